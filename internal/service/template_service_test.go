package service

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Raymond9734/customer-registry/internal/models"
)

func TestTemplateService_Render(t *testing.T) {
	tests := []struct {
		name     string
		template string
		customer *models.Customer
		want     string
		wantErr  bool
	}{
		{
			name:     "all fields present",
			template: "Welcome {first_name} {last_name}! Your {customer_type} account for {email} is ready.",
			customer: &models.Customer{
				FirstName:    "Alice",
				LastName:     "Mwangi",
				Email:        "alice@example.com",
				CustomerType: models.CustomerTypePremium,
			},
			want: "Welcome Alice Mwangi! Your Premium account for alice@example.com is ready.",
		},
		{
			name:     "missing last_name",
			template: "Hi {first_name} {last_name}.",
			customer: &models.Customer{FirstName: "Alice"},
			want:     "Hi Alice .",
		},
		{
			name:     "repeated placeholder",
			template: "Hi {first_name}, yes {first_name}, you!",
			customer: &models.Customer{FirstName: "Bob"},
			want:     "Hi Bob, yes Bob, you!",
		},
		{
			name:     "unknown placeholder becomes empty",
			template: "Hi {nickname}!",
			customer: &models.Customer{FirstName: "Bob"},
			want:     "Hi !",
		},
		{
			name:     "nil customer",
			template: "Hi {first_name}",
			customer: nil,
			wantErr:  true,
		},
		{
			name:     "malformed placeholder is left alone",
			template: "Hi {first_name",
			customer: &models.Customer{FirstName: "Alice"},
			want:     "Hi {first_name",
		},
		{
			name:     "placeholders are case sensitive",
			template: "Hi {First_Name}",
			customer: &models.Customer{FirstName: "Alice"},
			want:     "Hi {First_Name}",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTemplateService()
			got, err := svc.Render(tt.template, tt.customer)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTemplateService_ValidateTemplate(t *testing.T) {
	svc := NewTemplateService()

	assert.NoError(t, svc.ValidateTemplate("Welcome {first_name} ({email})"))
	assert.Error(t, svc.ValidateTemplate("   "))

	err := svc.ValidateTemplate("Hi {first_name}, your {location} store")
	if assert.Error(t, err) {
		assert.Contains(t, err.Error(), "location")
		assert.Contains(t, err.Error(), "customer_type, email, first_name, last_name")
	}
}

func TestTemplateService_ExtractPlaceholders(t *testing.T) {
	tests := []struct {
		name     string
		template string
		want     []string
	}{
		{"single placeholder", "Hi {first_name}", []string{"first_name"}},
		{"multiple placeholders", "Hi {first_name} at {email}", []string{"first_name", "email"}},
		{"duplicate placeholders", "Hi {first_name}, yes {first_name}", []string{"first_name", "first_name"}},
		{"no placeholders", "Plain text message", []string{}},
		{"malformed placeholders", "Hi {first_name and {last_name}", []string{"last_name"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := NewTemplateService()
			assert.Equal(t, tt.want, svc.ExtractPlaceholders(tt.template))
		})
	}
}

func BenchmarkTemplateService_Render(b *testing.B) {
	svc := NewTemplateService()
	template := "Welcome {first_name} {last_name}! Your {customer_type} account for {email} is ready."
	customer := &models.Customer{
		FirstName:    "Alice",
		LastName:     "Mwangi",
		Email:        "alice@example.com",
		CustomerType: models.CustomerTypeRegular,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		_, _ = svc.Render(template, customer)
	}
}
