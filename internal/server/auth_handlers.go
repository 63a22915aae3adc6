package server

import (
	"errors"
	"log/slog"
	"strings"

	"uplift/internal/middleware"
	"uplift/internal/models"
	"uplift/internal/repository"
	"uplift/internal/validation"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// registerForm carries the registration fields back into the re-rendered form
// on a validation failure so the user does not retype everything.
type registerForm struct {
	FirstName string
	LastName  string
	Email     string
}

func (s *Server) handleRegisterForm(c *fiber.Ctx) error {
	if viewerFrom(c).LoggedIn {
		return c.Redirect("/feed", fiber.StatusSeeOther)
	}
	return s.render(c, "register", nil)
}

func (s *Server) handleRegister(c *fiber.Ctx) error {
	form := registerForm{
		FirstName: strings.TrimSpace(c.FormValue("first_name")),
		LastName:  strings.TrimSpace(c.FormValue("last_name")),
		Email:     strings.TrimSpace(strings.ToLower(c.FormValue("email"))),
	}
	password := c.FormValue("password")

	if err := validateRegistration(form, password); err != nil {
		return s.renderRegister(c, form, err.Error())
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return s.renderError(c, models.NewInternalError(err))
	}

	user := &models.User{
		FirstName: form.FirstName,
		LastName:  form.LastName,
		Email:     form.Email,
		Password:  string(hashed),
	}

	// Uniqueness is enforced by the database constraint alone; a duplicate
	// registration loses the race at insert time, never before it.
	if err := s.userRepo.Create(c.UserContext(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return s.renderRegister(c, form, "An account with this email already exists")
		}
		return s.renderError(c, err)
	}

	if err := s.sessions.Login(c, user); err != nil {
		middleware.Logger.ErrorContext(c.UserContext(), "auto-login after registration failed",
			slog.String("error", err.Error()))
		return c.Redirect("/login", fiber.StatusSeeOther)
	}

	middleware.Logger.InfoContext(c.UserContext(), "user registered",
		slog.Any("user_id", user.ID))
	return c.Redirect("/feed", fiber.StatusSeeOther)
}

func (s *Server) handleLoginForm(c *fiber.Ctx) error {
	if viewerFrom(c).LoggedIn {
		return c.Redirect("/feed", fiber.StatusSeeOther)
	}
	return s.render(c, "login", nil)
}

func (s *Server) handleLogin(c *fiber.Ctx) error {
	email := strings.TrimSpace(strings.ToLower(c.FormValue("email")))
	password := c.FormValue("password")

	user, err := s.userRepo.GetByEmail(c.UserContext(), email)
	if err != nil {
		return s.renderError(c, err)
	}

	// One generic message for both unknown email and wrong password.
	if user == nil || bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		return c.Status(fiber.StatusUnauthorized).Render("login", fiber.Map{
			"Viewer": viewerFrom(c),
			"Error":  "Invalid email or password",
			"Email":  email,
		}, "layout")
	}

	if err := s.sessions.Login(c, user); err != nil {
		return s.renderError(c, models.NewInternalError(err))
	}

	return c.Redirect("/feed", fiber.StatusSeeOther)
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	if viewerFrom(c).LoggedIn {
		if err := s.sessions.Logout(c); err != nil {
			middleware.Logger.WarnContext(c.UserContext(), "logout failed",
				slog.String("error", err.Error()))
		}
	}
	return c.Redirect("/feed", fiber.StatusSeeOther)
}

func (s *Server) renderRegister(c *fiber.Ctx, form registerForm, message string) error {
	return c.Status(fiber.StatusBadRequest).Render("register", fiber.Map{
		"Viewer": viewerFrom(c),
		"Error":  message,
		"Form":   form,
	}, "layout")
}

func validateRegistration(form registerForm, password string) error {
	if err := validation.ValidateName(form.FirstName); err != nil {
		return err
	}
	if err := validation.ValidateName(form.LastName); err != nil {
		return err
	}
	if err := validation.ValidateEmail(form.Email); err != nil {
		return err
	}
	return validation.ValidatePassword(password)
}
