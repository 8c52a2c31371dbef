package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jirani-app/app-jirani/internal/logging"
	"github.com/jirani-app/app-jirani/internal/models"
	"github.com/jirani-app/app-jirani/internal/profile"
	"github.com/jirani-app/app-jirani/internal/services"
	"github.com/jirani-app/app-jirani/internal/utils"
	"go.uber.org/zap"
)

// ProfileStore is what the profile handlers need from the profile service
type ProfileStore interface {
	Get(ctx context.Context, userID string) (profile.Profile, error)
	Ensure(ctx context.Context, userID, email string) error
	Apply(ctx context.Context, userID string, fields []profile.Field, mutate services.Mutation) (before, after profile.Profile, err error)
	Now() time.Time
}

// ProfileHandlers serves the /v1/profile endpoints
type ProfileHandlers struct {
	logger   *logging.SafeLogger
	profiles ProfileStore
}

// NewProfileHandlers creates the profile handlers
func NewProfileHandlers(logger *logging.SafeLogger, profiles ProfileStore) *ProfileHandlers {
	return &ProfileHandlers{logger: logger, profiles: profiles}
}

// load returns the caller's profile, creating an empty one on first access
func (h *ProfileHandlers) load(c *gin.Context) (profile.Profile, bool) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")

	p, err := h.profiles.Get(ctx, userID)
	if errors.Is(err, models.ErrProfileNotFound) {
		if err = h.profiles.Ensure(ctx, userID, c.GetString("user_email")); err == nil {
			p, err = h.profiles.Get(ctx, userID)
		}
	}
	if err != nil {
		h.logger.Error("failed to load profile", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to load profile"})
		return p, false
	}
	return p, true
}

// GetProfile godoc
// @Summary Get the traveller profile
// @Description Returns the caller's profile with its completion, header and field rows.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.ProfileResponse "Profile"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /profile [get]
func (h *ProfileHandlers) GetProfile(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, models.NewProfileResponse(p))
}

// GetCompletion godoc
// @Summary Get profile completion
// @Description Returns how many of the seven tracked fields are filled in.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} models.CompletionResponse "Completion"
// @Failure 401 {object} ErrorResponse "Missing or invalid token"
// @Router /profile/completion [get]
func (h *ProfileHandlers) GetCompletion(c *gin.Context) {
	p, ok := h.load(c)
	if !ok {
		return
	}
	completion := profile.ComputeCompletion(p)
	c.JSON(http.StatusOK, models.CompletionResponse{
		Completion:    completion,
		ProgressWidth: profile.ProgressWidth(completion),
	})
}

// UpdateIdentity godoc
// @Summary Edit name, email and phone
// @Description Replaces the identity fields. Empty values clear the field.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body models.IdentityRequest true "Identity"
// @Success 200 {object} models.ProfileResponse "Updated profile"
// @Failure 400 {object} ValidationErrorResponse "Invalid input"
// @Failure 422 {object} ErrorResponse "Invalid email or phone"
// @Router /profile/identity [put]
func (h *ProfileHandlers) UpdateIdentity(c *gin.Context) {
	var req models.IdentityRequest
	if !bindJSON(c, &req) {
		return
	}
	fields := []profile.Field{profile.FieldName, profile.FieldEmail, profile.FieldPhone}
	h.apply(c, fields, func(p profile.Profile) (profile.Profile, error) {
		return profile.UpdateIdentity(p, profile.Identity{Name: req.Name, Email: req.Email, Phone: req.Phone})
	})
}

// AddPassport godoc
// @Summary Add a passport
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body models.PassportRequest true "Passport"
// @Success 200 {object} models.ProfileResponse "Updated profile"
// @Failure 400 {object} ValidationErrorResponse "Invalid input"
// @Failure 422 {object} ErrorResponse "Expired passport"
// @Router /profile/passport [post]
func (h *ProfileHandlers) AddPassport(c *gin.Context) {
	var req models.PassportRequest
	if !bindJSON(c, &req) {
		return
	}
	expiresOn, err := time.Parse(profile.DateLayout, req.ExpiresOn)
	if err != nil {
		c.JSON(http.StatusBadRequest, ValidationErrorResponse{
			Error:  "Invalid request",
			Fields: map[string]string{"expires_on": "Use the format YYYY-MM-DD."},
		})
		return
	}
	h.apply(c, []profile.Field{profile.FieldPassport}, func(p profile.Profile) (profile.Profile, error) {
		return profile.AddPassport(p, req.Number, expiresOn, h.profiles.Now())
	})
}

// AddNationalID godoc
// @Summary Add a national ID
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body models.NationalIDRequest true "National ID"
// @Success 200 {object} models.ProfileResponse "Updated profile"
// @Failure 400 {object} ValidationErrorResponse "Invalid input"
// @Router /profile/national-id [post]
func (h *ProfileHandlers) AddNationalID(c *gin.Context) {
	var req models.NationalIDRequest
	if !bindJSON(c, &req) {
		return
	}
	h.apply(c, []profile.Field{profile.FieldNationalID}, func(p profile.Profile) (profile.Profile, error) {
		return profile.AddNationalID(p, req.Number)
	})
}

// AddPaymentMethod godoc
// @Summary Add a payment method
// @Description Stores only the card brand and last four digits.
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body models.PaymentMethodRequest true "Payment method"
// @Success 200 {object} models.ProfileResponse "Updated profile"
// @Failure 400 {object} ValidationErrorResponse "Invalid input"
// @Router /profile/payment-method [post]
func (h *ProfileHandlers) AddPaymentMethod(c *gin.Context) {
	var req models.PaymentMethodRequest
	if !bindJSON(c, &req) {
		return
	}
	h.apply(c, []profile.Field{profile.FieldPayment}, func(p profile.Profile) (profile.Profile, error) {
		return profile.AddPaymentMethod(p, req.Brand, req.Last4)
	})
}

// AddEmergencyContact godoc
// @Summary Add an emergency contact
// @Tags profile
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param data body models.EmergencyContactRequest true "Emergency contact"
// @Success 200 {object} models.ProfileResponse "Updated profile"
// @Failure 400 {object} ValidationErrorResponse "Invalid input"
// @Router /profile/emergency-contact [post]
func (h *ProfileHandlers) AddEmergencyContact(c *gin.Context) {
	var req models.EmergencyContactRequest
	if !bindJSON(c, &req) {
		return
	}
	h.apply(c, []profile.Field{profile.FieldEmergencyContact}, func(p profile.Profile) (profile.Profile, error) {
		return profile.AddEmergencyContact(p, req.Name, req.Phone)
	})
}

// QuickAdd godoc
// @Summary Fill a field with demo data
// @Description Fills a document, payment or contact field with placeholder values.
// @Tags profile
// @Produce json
// @Security BearerAuth
// @Param field path string true "Field" Enums(passport, nationalId, payment, emergencyContact)
// @Success 200 {object} models.ProfileResponse "Updated profile"
// @Failure 404 {object} ErrorResponse "Unknown field"
// @Failure 422 {object} ErrorResponse "Field has no placeholder"
// @Router /profile/quick-add/{field} [post]
func (h *ProfileHandlers) QuickAdd(c *gin.Context) {
	field, ok := profile.ParseField(c.Param("field"))
	if !ok {
		c.JSON(http.StatusNotFound, ErrorResponse{Error: "Unknown profile field"})
		return
	}
	h.apply(c, []profile.Field{field}, func(p profile.Profile) (profile.Profile, error) {
		return profile.QuickAdd(p, field, h.profiles.Now())
	})
}

func (h *ProfileHandlers) apply(c *gin.Context, fields []profile.Field, mutate services.Mutation) {
	ctx := c.Request.Context()
	userID := c.GetString("user_id")

	// make sure a first write has a document to land in
	if _, ok := h.load(c); !ok {
		return
	}

	before, after, err := h.profiles.Apply(ctx, userID, fields, mutate)
	if err != nil {
		if errors.Is(err, models.ErrProfileNotFound) {
			c.JSON(http.StatusNotFound, ErrorResponse{Error: "Profile not found"})
			return
		}
		if msg, ok := profileInputMessage(err); ok {
			c.JSON(http.StatusUnprocessableEntity, ErrorResponse{Error: msg})
			return
		}
		h.logger.Error("failed to update profile", zap.String("user_id", userID), zap.Error(err))
		c.JSON(http.StatusInternalServerError, ErrorResponse{Error: "Failed to update profile"})
		return
	}

	auditCtx := utils.GetAuditContextFromGin(c)
	for _, f := range fields {
		// row subtitles are already masked
		oldValue := profile.RowFor(before, f).Subtitle
		newValue := profile.RowFor(after, f).Subtitle
		if err := utils.LogProfileUpdate(ctx, auditCtx, string(f), oldValue, newValue); err != nil {
			h.logger.Warn("failed to audit profile update", zap.Error(err))
		}
	}

	c.JSON(http.StatusOK, models.NewProfileResponse(after))
}

var profileInputErrors = map[error]string{
	profile.ErrPassportNumberRequired: "Enter the passport number.",
	profile.ErrPassportExpired:        "This passport has expired.",
	profile.ErrNationalIDRequired:     "Enter the national ID number.",
	profile.ErrPaymentBrandRequired:   "Enter the card brand.",
	profile.ErrInvalidLast4:           "Enter the last 4 digits of the card.",
	profile.ErrContactNameRequired:    "Enter the contact's name.",
	profile.ErrContactPhoneRequired:   "Enter the contact's phone number.",
	profile.ErrInvalidPhone:           "Enter a valid phone number.",
	profile.ErrInvalidEmail:           "Enter a valid email address.",
	profile.ErrQuickAddNotSupported:   "This field has no placeholder. Edit your profile instead.",
	profile.ErrUnknownField:           "Unknown profile field",
}

// profileInputMessage maps a rejected mutation to a user-facing message
func profileInputMessage(err error) (string, bool) {
	for target, msg := range profileInputErrors {
		if errors.Is(err, target) {
			return msg, true
		}
	}
	return "", false
}
