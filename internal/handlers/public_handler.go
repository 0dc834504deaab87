package handlers

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"

	"github.com/yourhelp9/tiffin-service/internal/mealplan"
	"github.com/yourhelp9/tiffin-service/internal/services"
)

// PublicHandler serves the marketing pages and the contact form.
type PublicHandler struct {
	email        *services.EmailService
	contactEmail string
}

func NewPublicHandler(email *services.EmailService, contactEmail string) *PublicHandler {
	return &PublicHandler{email: email, contactEmail: contactEmail}
}

// Home renders the landing page.
func (h *PublicHandler) Home(c echo.Context) error {
	data := pageData(c, "Lunchmate - Fresh Tiffins, Delivered Daily", "home")
	data["Plans"] = mealplan.Plans
	return c.Render(http.StatusOK, "home.html", data)
}

// About renders the about page.
func (h *PublicHandler) About(c echo.Context) error {
	return c.Render(http.StatusOK, "about.html", pageData(c, "About Us - Lunchmate", "about"))
}

// ContactPage renders the contact page with its enquiry form.
func (h *PublicHandler) ContactPage(c echo.Context) error {
	return c.Render(http.StatusOK, "contact.html", pageData(c, "Contact Us - Lunchmate", "contact"))
}

// HandleContact mails an enquiry to the service inbox.
func (h *PublicHandler) HandleContact(c echo.Context) error {
	name := c.FormValue("name")
	email := c.FormValue("email")
	message := c.FormValue("message")

	if name == "" || email == "" || message == "" {
		return redirectWithError(c, "/contact", "Please fill in your name, email and message.")
	}

	subject := fmt.Sprintf("Contact enquiry from %s", name)
	body := fmt.Sprintf("From: %s <%s>\n\n%s", name, email, message)

	if err := h.email.SendEmail([]string{h.contactEmail}, subject, body); err != nil {
		log.Error().Err(err).Msg("failed to send contact enquiry")
		return redirectWithError(c, "/contact", "We could not send your message. Please try again later.")
	}

	return redirectWithMessage(c, "/contact", "Thanks for reaching out! We'll get back to you soon.")
}
