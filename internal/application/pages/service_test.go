package pages

import (
	"context"
	"testing"

	"github.com/Bhargav2112/Flipcart-Clone/internal/domain/shared"
	"github.com/Bhargav2112/Flipcart-Clone/internal/infrastructure/persistence/models"
	"github.com/Bhargav2112/Flipcart-Clone/tests/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestEmbeddedContent(t *testing.T) {
	svc, err := NewService(nil, zap.NewNop())
	require.NoError(t, err)
	assert.Equal(t, []string{"about", "help", "contact", "terms"}, svc.Slugs())

	contact, err := svc.Page("Contact", "")
	require.NoError(t, err)
	require.NotNil(t, contact.Contact)
	assert.Equal(t, "support@flipkart.com", contact.Contact.Email)

	terms, err := svc.Page("terms", "")
	require.NoError(t, err)
	assert.NotEmpty(t, terms.Updated)
	assert.NotEmpty(t, terms.Sections)

	_, err = svc.Page("careers", "")
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestHelpSearch(t *testing.T) {
	svc, err := NewService(nil, zap.NewNop())
	require.NoError(t, err)

	all, err := svc.Page("help", "")
	require.NoError(t, err)

	refunds, err := svc.Page("help", "REFUND")
	require.NoError(t, err)
	require.NotEmpty(t, refunds.FAQs)
	assert.Less(t, len(refunds.FAQs), len(all.FAQs))
	for _, f := range refunds.FAQs {
		assert.Contains(t, f.Question+f.Answer, "efund")
	}

	again, err := svc.Page("help", "")
	require.NoError(t, err)
	assert.Len(t, again.FAQs, len(all.FAQs), "searching does not narrow the stored page")
}

func TestNewServiceFromYAML_Invalid(t *testing.T) {
	tests := map[string]string{
		"malformed":      "pages: [",
		"missing slug":   "pages:\n  - title: Nameless\n",
		"duplicate slug": "pages:\n  - slug: a\n  - slug: a\n",
	}
	for name, doc := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := NewServiceFromYAML([]byte(doc), nil, nil)
			assert.Error(t, err)
		})
	}
}

func TestSubmitContact(t *testing.T) {
	repos := testutil.NewRepositories(t)
	svc, err := NewService(repos.Contacts, zap.NewNop())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, svc.SubmitContact(ctx, ContactRequest{
		Name:    "Ravi",
		Email:   "Ravi@Shop.test",
		Subject: "Late delivery",
		Message: "My parcel has not arrived yet.",
	}))

	err = svc.SubmitContact(ctx, ContactRequest{Name: "Ravi", Email: "not-an-email", Subject: "x", Message: "y"})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_EMAIL", domainErr.Code)

	var stored []models.ContactMessageModel
	require.NoError(t, repos.DB.Find(&stored).Error)
	require.Len(t, stored, 1)
	assert.Equal(t, "ravi@shop.test", stored[0].Email)
}
