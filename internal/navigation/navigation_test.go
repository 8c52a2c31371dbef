package navigation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStack_PushBack(t *testing.T) {
	s := NewStack(Splash)

	s.Push(SignIn)
	s.Push(SignUp)
	assert.Equal(t, SignUp, s.Current())

	s.Back()
	assert.Equal(t, SignIn, s.Current())

	s.Back()
	s.Back() // root stays
	assert.Equal(t, Splash, s.Current())
	assert.Equal(t, []Route{Splash}, s.History())
}

func TestStack_Replace(t *testing.T) {
	s := NewStack(Splash)
	s.Push(EmailSignIn)

	s.Replace(Home)

	assert.Equal(t, []Route{Splash, Home}, s.History())
	s.Back()
	assert.Equal(t, Splash, s.Current())
}

func TestStack_ReplaceEmpty(t *testing.T) {
	s := &Stack{}
	assert.Equal(t, Route(""), s.Current())

	s.Replace(Home)
	assert.Equal(t, Home, s.Current())
}

func TestTabs(t *testing.T) {
	jirani := Tabs("jirani")
	assert.Len(t, jirani, 3)
	assert.Equal(t, "Trips", jirani[0].Title)
	assert.Equal(t, Profile, jirani[2].Route)

	biblion := Tabs("biblion")
	assert.Equal(t, "Read", biblion[0].Title)
	assert.Equal(t, "Library", biblion[1].Title)
}

func TestProfileMenu(t *testing.T) {
	items := ProfileMenu()

	assert.Len(t, items, 9)
	for _, item := range items {
		// exactly one of route or action
		assert.True(t, (item.Route == "") != (item.Action == ""), item.Label)
	}
	last := items[len(items)-1]
	assert.Equal(t, "Log out", last.Label)
	assert.Equal(t, ActionLogOut, last.Action)
}
