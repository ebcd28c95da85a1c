package repositories

// Repositories holds all the repository instances
type Repositories struct {
	AccountRepository         *AccountRepository
	SessionRepository         *SessionRepository
	UserRepository            *UserRepository
	ContentRepository         *ContentRepository
	FeedbackRepository        *FeedbackRepository
	VerifiedStudentRepository *VerifiedStudentRepository
}

// NewRepositories initializes all repositories on the same connection
func NewRepositories(db DBTX) *Repositories {
	return &Repositories{
		AccountRepository:         NewAccountRepository(db),
		SessionRepository:         NewSessionRepository(db),
		UserRepository:            NewUserRepository(db),
		ContentRepository:         NewContentRepository(db),
		FeedbackRepository:        NewFeedbackRepository(db),
		VerifiedStudentRepository: NewVerifiedStudentRepository(db),
	}
}
