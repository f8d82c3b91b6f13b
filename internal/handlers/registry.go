package handlers

// Registry собирает все обработчики для регистрации маршрутов
type Registry struct {
	Auth         *AuthHandler
	User         *UserHandler
	Payment      *PaymentHandler
	Plan         *PlanHandler
	Announcement *AnnouncementHandler
	Profile      *ProfileHandler
}
