package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	"github.com/collabdesk/billing-api/internal/models"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// schemaViolations flattens validator errors into a field -> rule map for the
// 422 response details.
func schemaViolations(err error) map[string]string {
	out := map[string]string{}
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, fe := range verrs {
			out[fe.Field()] = fe.Tag()
		}
	}
	return out
}

// queryUint parses a positive integer query parameter; ok is false when the
// parameter is missing or not a positive number.
func queryUint(r *http.Request, name string) (uint, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, false
	}
	return uint(n), true
}

// clientByExternalID resolves a client record from the textual client id other
// entities carry. Non-numeric ids resolve to not-found, same as an unknown id.
func clientByExternalID(db *gorm.DB, clientID string) (*models.ClientInformation, error) {
	n, err := strconv.Atoi(strings.TrimSpace(clientID))
	if err != nil {
		return nil, gorm.ErrRecordNotFound
	}
	var c models.ClientInformation
	if err := db.Where("client_id = ?", n).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}
