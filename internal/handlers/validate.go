package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/jirani-app/app-jirani/internal/form"
	"github.com/jirani-app/app-jirani/internal/models"
	"github.com/jirani-app/app-jirani/internal/utils"
)

// ValidateCredentials godoc
// @Summary Validate a credentials form
// @Description Applies the sign-in form rules (email pattern, minimum password length) without signing in.
// @Tags validation
// @Accept json
// @Produce json
// @Param data body models.CredentialsRequest true "Credentials"
// @Success 200 {object} models.CredentialsValidationResponse "Validation result"
// @Failure 400 {object} ErrorResponse "Malformed body"
// @Router /validate/credentials [post]
func ValidateCredentials(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	errs := form.Validate(req.Email, req.Password)
	resp := models.CredentialsValidationResponse{Valid: errs.Valid()}
	if !resp.Valid {
		resp.Errors = make(map[string]string, len(errs))
		for field, msg := range errs {
			resp.Errors[string(field)] = msg
		}
	}
	c.JSON(http.StatusOK, resp)
}

// ValidatePhone godoc
// @Summary Validate a phone number
// @Description Parses a phone number and returns its normalized forms. Numbers without a country code are read in the given region (RW by default).
// @Tags validation
// @Accept json
// @Produce json
// @Param data body models.PhoneValidationRequest true "Phone number"
// @Success 200 {object} models.PhoneValidationResponse "Validation result"
// @Failure 400 {object} ValidationErrorResponse "Missing phone"
// @Router /validate/phone [post]
func ValidatePhone(c *gin.Context) {
	var req models.PhoneValidationRequest
	if !bindJSON(c, &req) {
		return
	}

	phone, err := utils.ParsePhoneNumber(req.Phone, strings.ToUpper(req.Region))
	if err != nil {
		c.JSON(http.StatusOK, models.PhoneValidationResponse{Valid: false, Error: "Enter a valid phone number."})
		return
	}
	c.JSON(http.StatusOK, models.PhoneValidationResponse{
		Valid:         true,
		E164:          phone.E164,
		International: phone.International,
		Region:        phone.Region,
	})
}
