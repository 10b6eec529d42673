package service

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"github.com/Raymond9734/customer-registry/internal/models"
)

// TemplateService renders customer notices from {placeholder} templates
type TemplateService interface {
	Render(template string, customer *models.Customer) (string, error)
	ValidateTemplate(template string) error
	ExtractPlaceholders(template string) []string
}

type templateService struct {
	placeholderPattern *regexp.Regexp
}

// NewTemplateService creates a new template service
func NewTemplateService() TemplateService {
	return &templateService{
		placeholderPattern: regexp.MustCompile(`\{([a-z_]+)\}`),
	}
}

// customerFields maps each supported placeholder to its customer value
func customerFields(customer *models.Customer) map[string]string {
	return map[string]string{
		"first_name":    customer.FirstName,
		"last_name":     customer.LastName,
		"email":         customer.Email,
		"customer_type": string(customer.CustomerType),
	}
}

// Render replaces placeholders with customer data.
// Unknown placeholders are replaced with empty strings.
func (s *templateService) Render(template string, customer *models.Customer) (string, error) {
	if customer == nil {
		return "", models.ErrInvalidInput("customer cannot be nil")
	}

	fields := customerFields(customer)

	return s.placeholderPattern.ReplaceAllStringFunc(template, func(match string) string {
		return fields[strings.Trim(match, "{}")]
	}), nil
}

// ValidateTemplate checks the template is non-empty and only uses known placeholders
func (s *templateService) ValidateTemplate(template string) error {
	if strings.TrimSpace(template) == "" {
		return models.ErrInvalidInput("template cannot be empty")
	}

	known := customerFields(&models.Customer{})

	var invalid []string
	for _, placeholder := range s.ExtractPlaceholders(template) {
		if _, ok := known[placeholder]; !ok {
			invalid = append(invalid, placeholder)
		}
	}

	if len(invalid) > 0 {
		valid := make([]string, 0, len(known))
		for name := range known {
			valid = append(valid, name)
		}
		sort.Strings(valid)

		return models.ErrInvalidInput(fmt.Sprintf(
			"invalid placeholders: %s. Valid placeholders are: %s",
			strings.Join(invalid, ", "),
			strings.Join(valid, ", "),
		))
	}

	return nil
}

// ExtractPlaceholders returns all placeholders found in template, in order
func (s *templateService) ExtractPlaceholders(template string) []string {
	matches := s.placeholderPattern.FindAllStringSubmatch(template, -1)
	placeholders := make([]string, 0, len(matches))

	for _, match := range matches {
		if len(match) > 1 {
			placeholders = append(placeholders, match[1])
		}
	}

	return placeholders
}
