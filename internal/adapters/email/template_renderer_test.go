package email

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"invy/internal/domain"
)

func TestTemplateRenderer_Render(t *testing.T) {
	r := NewTemplateRenderer()

	t.Run("event_created", func(t *testing.T) {
		subject, html, text, err := r.Render("event_created", &domain.EventCreatedEmailData{
			EventTitle: "Garden Party",
			PublicURL:  "https://invy.test/e/a7x9k2m4",
			ManageURL:  "https://invy.test/manage/secret",
		})
		require.NoError(t, err)
		assert.Contains(t, subject, "Garden Party")
		assert.Contains(t, html, "https://invy.test/manage/secret")
		assert.Contains(t, text, "https://invy.test/e/a7x9k2m4")
	})

	t.Run("rsvp_notification with plus one", func(t *testing.T) {
		subject, html, text, err := r.Render("rsvp_notification", &domain.RsvpNotificationEmailData{
			EventTitle: "Garden Party",
			GuestName:  "Bea",
			Status:     domain.RSVPYes,
			PlusOne:    2,
			ManageURL:  "https://invy.test/manage/secret",
		})
		require.NoError(t, err)
		assert.Contains(t, subject, "Bea")
		assert.Contains(t, html, "2 extra guest")
		assert.Contains(t, text, "2 extra guest")
	})

	t.Run("rsvp_notification without plus one", func(t *testing.T) {
		_, html, _, err := r.Render("rsvp_notification", &domain.RsvpNotificationEmailData{
			EventTitle: "Garden Party",
			GuestName:  "Bea",
			Status:     domain.RSVPMaybe,
			ManageURL:  "https://invy.test/manage/secret",
		})
		require.NoError(t, err)
		assert.NotContains(t, html, "extra guest")
	})

	t.Run("rsvp_confirmation", func(t *testing.T) {
		subject, html, _, err := r.Render("rsvp_confirmation", &domain.RsvpConfirmationEmailData{
			EventTitle: "Garden Party",
			GuestName:  "Bea",
			Status:     domain.RSVPYes,
			PublicURL:  "https://invy.test/e/a7x9k2m4",
		})
		require.NoError(t, err)
		assert.Contains(t, subject, "Garden Party")
		assert.Contains(t, html, "Bea")
	})

	t.Run("html is escaped", func(t *testing.T) {
		_, html, text, err := r.Render("rsvp_confirmation", &domain.RsvpConfirmationEmailData{
			EventTitle: "<script>alert(1)</script>",
			GuestName:  "Bea",
			Status:     domain.RSVPYes,
		})
		require.NoError(t, err)
		assert.NotContains(t, html, "<script>")
		assert.Contains(t, text, "<script>")
	})

	t.Run("unknown template", func(t *testing.T) {
		_, _, _, err := r.Render("does_not_exist", nil)
		require.Error(t, err)
	})
}
