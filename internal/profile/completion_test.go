package profile

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestComputeCompletion(t *testing.T) {
	full := MockProfile()
	full.Passport = &Passport{Number: "PN1"}
	full.NationalID = &NationalID{Number: "1"}
	full.Payment = &PaymentMethod{Brand: "VISA", Last4: "4242"}
	full.EmergencyContact = &EmergencyContact{Name: "P", Phone: "+250789000111"}

	tests := []struct {
		name    string
		profile Profile
		want    Completion
	}{
		{
			name:    "empty",
			profile: Profile{},
			want:    Completion{Done: 0, Total: 7, Percent: 0},
		},
		{
			name:    "name and email only",
			profile: Profile{Name: strPtr("Alex N."), Email: strPtr("alex@example.com")},
			want:    Completion{Done: 2, Total: 7, Percent: 29},
		},
		{
			name:    "mock seed",
			profile: MockProfile(),
			want:    Completion{Done: 3, Total: 7, Percent: 43},
		},
		{
			name:    "empty strings are missing",
			profile: Profile{Name: strPtr(""), Email: strPtr(""), Phone: strPtr("")},
			want:    Completion{Done: 0, Total: 7, Percent: 0},
		},
		{
			name:    "complete",
			profile: full,
			want:    Completion{Done: 7, Total: 7, Percent: 100},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ComputeCompletion(tt.profile))
		})
	}
}

func TestRoundPercent_HalfUp(t *testing.T) {
	// k/7*100 for k = 0..7
	want := []int{0, 14, 29, 43, 57, 71, 86, 100}
	for done, pct := range want {
		assert.Equal(t, pct, roundPercent(done, 7), "done=%d", done)
	}
	assert.Equal(t, 50, roundPercent(1, 2))
	assert.Equal(t, 13, roundPercent(1, 8)) // 12.5
	assert.Equal(t, 0, roundPercent(0, 0))
}

func TestComputeCompletion_OrderIndependent(t *testing.T) {
	profiles := []Profile{
		{},
		MockProfile(),
		{Passport: &Passport{Number: "X"}, Payment: &PaymentMethod{Brand: "VISA", Last4: "0000"}},
	}
	rng := rand.New(rand.NewSource(7))

	for _, p := range profiles {
		want := ComputeCompletion(p)
		for i := 0; i < 50; i++ {
			order := append([]Field(nil), Fields...)
			rng.Shuffle(len(order), func(a, b int) { order[a], order[b] = order[b], order[a] })
			assert.Equal(t, want, ComputeCompletionOrdered(p, order), "order %v", order)
		}
	}
}

func TestComputeCompletion_IsPure(t *testing.T) {
	p := MockProfile()
	before := p

	first := ComputeCompletion(p)
	second := ComputeCompletion(p)

	assert.Equal(t, first, second)
	assert.Equal(t, before, p)
}

func TestFlags(t *testing.T) {
	flags := Flags(MockProfile())

	assert.Len(t, flags, 7)
	assert.True(t, flags[FieldName])
	assert.True(t, flags[FieldEmail])
	assert.True(t, flags[FieldPhone])
	assert.False(t, flags[FieldPassport])
	assert.False(t, flags[FieldNationalID])
	assert.False(t, flags[FieldPayment])
	assert.False(t, flags[FieldEmergencyContact])
}

func TestProgressWidth(t *testing.T) {
	assert.Equal(t, 6, ProgressWidth(Completion{Percent: 0}))
	assert.Equal(t, 6, ProgressWidth(Completion{Percent: 5}))
	assert.Equal(t, 14, ProgressWidth(Completion{Percent: 14}))
	assert.Equal(t, 100, ProgressWidth(Completion{Percent: 100}))
}

func TestParseField(t *testing.T) {
	f, ok := ParseField("emergencyContact")
	assert.True(t, ok)
	assert.Equal(t, FieldEmergencyContact, f)

	_, ok = ParseField("avatar")
	assert.False(t, ok)
}
