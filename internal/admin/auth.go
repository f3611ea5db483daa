package admin

import (
	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

const sessionAdminKey = "admin"

// requireAdmin пускает дальше только залогиненную сессию,
// остальных отправляет на форму входа.
func (s *Server) requireAdmin(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err != nil {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	name, _ := sess.Get(sessionAdminKey).(string)
	if name == "" {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	c.Locals(sessionAdminKey, name)
	return c.Next()
}

// verifyPassword сверяет пароль: bcrypt-хэш в приоритете,
// открытый пароль из конфига — запасной вариант для локального стенда.
func (s *Server) verifyPassword(password string) bool {
	if s.passwordHash != "" {
		return bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)) == nil
	}
	return s.password != "" && s.password == password
}

func (s *Server) handleLoginPage(c *fiber.Ctx) error {
	sess, err := s.store.Get(c)
	if err == nil {
		if name, _ := sess.Get(sessionAdminKey).(string); name != "" {
			return c.Redirect("/admin", fiber.StatusSeeOther)
		}
	}
	return c.Render("login", fiber.Map{
		"Error": c.Query("error"),
	})
}

func (s *Server) handleLoginPost(c *fiber.Ctx) error {
	username := c.FormValue("username")
	password := c.FormValue("password")

	if username != s.username || !s.verifyPassword(password) {
		s.log.Warn("неудачный вход в админку", "username", username, "ip", c.IP())
		return c.Redirect("/admin/login?error=invalid_credentials", fiber.StatusSeeOther)
	}

	sess, err := s.store.Get(c)
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session store unavailable")
	}
	if err := sess.Regenerate(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session regenerate failed")
	}
	sess.Set(sessionAdminKey, username)
	if err := sess.Save(); err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "session save failed")
	}

	s.log.Info("вход в админку", "username", username, "ip", c.IP())
	return c.Redirect("/admin", fiber.StatusSeeOther)
}

func (s *Server) handleLogout(c *fiber.Ctx) error {
	if sess, err := s.store.Get(c); err == nil {
		_ = sess.Destroy()
	}
	return c.Redirect("/admin/login", fiber.StatusSeeOther)
}
