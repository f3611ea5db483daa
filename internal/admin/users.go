package admin

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/maybecook/mealbot/internal/domain/users"
)

const usersPerPage = 50

// userRow Строка списка с вердиктом по подписке на текущий момент.
type userRow struct {
	users.User
	Active   bool
	Tier     string
	DaysLeft int
}

type subscriptionForm struct {
	Tier string `form:"subscription_type" validate:"required,oneof=free basic pro"`
	Days int    `form:"days" validate:"min=0,max=3650"`
}

func totalPages(total, perPage int) int {
	if total <= 0 {
		return 1
	}
	return (total + perPage - 1) / perPage
}

func (s *Server) handleUsers(c *fiber.Ctx) error {
	ctx := c.UserContext()

	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	filter := users.ListFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Tier:   c.Query("subscription"),
		Limit:  usersPerPage,
		Offset: (page - 1) * usersPerPage,
	}

	total, err := s.users.Count(ctx, filter)
	if err != nil {
		s.log.Error("не удалось посчитать пользователей", "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "users unavailable")
	}
	list, err := s.users.List(ctx, filter)
	if err != nil {
		s.log.Error("не удалось загрузить пользователей", "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "users unavailable")
	}

	now := time.Now()
	rows := make([]userRow, 0, len(list))
	for i := range list {
		st := s.eval.Evaluate(&list[i], now)
		rows = append(rows, userRow{
			User:     list[i],
			Active:   st.Active,
			Tier:     string(st.Tier),
			DaysLeft: st.DaysLeft,
		})
	}

	return c.Render("users", fiber.Map{
		"Admin":        c.Locals(sessionAdminKey),
		"Users":        rows,
		"Total":        total,
		"Page":         page,
		"TotalPages":   totalPages(total, usersPerPage),
		"PrevPage":     page - 1,
		"NextPage":     page + 1,
		"Search":       filter.Search,
		"Subscription": filter.Tier,
	})
}

func (s *Server) handleUserDetail(c *fiber.Ctx) error {
	ctx := c.UserContext()

	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}
	u, err := s.users.GetByID(ctx, int64(id))
	if err != nil {
		s.log.Error("не удалось загрузить пользователя", "user_id", id, "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "user unavailable")
	}
	if u == nil {
		return fiber.ErrNotFound
	}

	now := time.Now()
	st := s.eval.Evaluate(u, now)

	hist, err := s.history.ListByUser(ctx, u.ID, 20)
	if err != nil {
		s.log.Warn("история готовки не загрузилась", "user_id", u.ID, "err", err)
	}
	purch, err := s.buys.ListByUser(ctx, u.ID, 20)
	if err != nil {
		s.log.Warn("покупки не загрузились", "user_id", u.ID, "err", err)
	}

	return c.Render("user_detail", fiber.Map{
		"Admin":         c.Locals(sessionAdminKey),
		"User":          u,
		"Active":        st.Active,
		"Tier":          string(st.Tier),
		"DaysLeft":      st.DaysLeft,
		"QuestionsLeft": s.eval.QuestionsLeft(u, now),
		"History":       hist,
		"Purchases":     purch,
		"Success":       c.Query("success"),
		"Error":         c.Query("error"),
	})
}

// handleUserSubscription Назначение тарифа вручную: срок отсчитывается
// от текущего момента, days=0 сразу гасит подписку.
func (s *Server) handleUserSubscription(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}

	var form subscriptionForm
	if err := c.BodyParser(&form); err != nil {
		return c.Redirect(fmt.Sprintf("/admin/users/%d?error=bad_form", id), fiber.StatusSeeOther)
	}
	if err := s.val.Struct(form); err != nil {
		return c.Redirect(fmt.Sprintf("/admin/users/%d?error=bad_form", id), fiber.StatusSeeOther)
	}

	until := time.Now().Add(time.Duration(form.Days) * 24 * time.Hour)
	if err := s.users.SetSubscription(c.UserContext(), int64(id), form.Tier, until); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return fiber.ErrNotFound
		}
		s.log.Error("не удалось обновить подписку", "user_id", id, "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "update failed")
	}

	s.log.Info("подписка изменена из админки",
		"user_id", id, "tier", form.Tier, "days", form.Days)
	s.invalidateStats(c)
	return c.Redirect(fmt.Sprintf("/admin/users/%d?success=subscription", id), fiber.StatusSeeOther)
}

func (s *Server) handleUserDelete(c *fiber.Ctx) error {
	id, err := c.ParamsInt("id")
	if err != nil {
		return fiber.ErrNotFound
	}
	if err := s.users.Delete(c.UserContext(), int64(id)); err != nil {
		if errors.Is(err, users.ErrNotFound) {
			return fiber.ErrNotFound
		}
		s.log.Error("не удалось удалить пользователя", "user_id", id, "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "delete failed")
	}
	s.log.Info("пользователь удалён из админки", "user_id", id)
	s.invalidateStats(c)
	return c.Redirect("/admin/users", fiber.StatusSeeOther)
}

// handleUsersExport Выгрузка в xlsx с учётом текущих фильтров списка.
func (s *Server) handleUsersExport(c *fiber.Ctx) error {
	list, err := s.users.List(c.UserContext(), users.ListFilter{
		Search: strings.TrimSpace(c.Query("search")),
		Tier:   c.Query("subscription"),
	})
	if err != nil {
		s.log.Error("не удалось выгрузить пользователей", "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "export failed")
	}

	f, err := buildUsersXLSX(list, s.eval, time.Now())
	if err != nil {
		s.log.Error("не удалось собрать xlsx", "err", err)
		return fiber.NewError(fiber.StatusInternalServerError, "export failed")
	}
	defer f.Close()

	buf, err := f.WriteToBuffer()
	if err != nil {
		return fiber.NewError(fiber.StatusInternalServerError, "export failed")
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition,
		fmt.Sprintf(`attachment; filename="users_%s.xlsx"`, time.Now().Format("2006-01-02")))
	return c.Send(buf.Bytes())
}

// handleAPIUserSearch Подсказки для поиска в шапке админки.
func (s *Server) handleAPIUserSearch(c *fiber.Ctx) error {
	q := strings.TrimSpace(c.Query("q"))
	if len([]rune(q)) < 2 {
		return c.JSON([]fiber.Map{})
	}
	list, err := s.users.List(c.UserContext(), users.ListFilter{Search: q, Limit: 10})
	if err != nil {
		s.log.Error("поиск пользователей не удался", "err", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "search failed"})
	}

	out := make([]fiber.Map, 0, len(list))
	for i := range list {
		u := &list[i]
		out = append(out, fiber.Map{
			"id":           u.ID,
			"telegram_id":  u.TelegramID,
			"username":     u.Username,
			"first_name":   u.FirstName,
			"subscription": u.SubscriptionType,
		})
	}
	return c.JSON(out)
}
