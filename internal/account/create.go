package account

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/iudanet/accountkeeper/internal/crypto"
	"github.com/iudanet/accountkeeper/internal/models"
	"github.com/iudanet/accountkeeper/internal/storage"
	"github.com/iudanet/accountkeeper/internal/validation"
)

// CreateDraft holds the create form. The salt is generated once when the draft
// is started and may only be regenerated before submission.
type CreateDraft struct {
	Mail     string
	Name     string
	Password string
	Salt     string
}

// NewCreateDraft starts a create flow with a fresh salt
func (s *Service) NewCreateDraft() (CreateDraft, error) {
	return CreateDraft{}.RegenerateSalt()
}

// WithMail returns a copy of the draft with mail set
func (d CreateDraft) WithMail(mail string) CreateDraft {
	d.Mail = mail
	return d
}

// WithName returns a copy of the draft with name set
func (d CreateDraft) WithName(name string) CreateDraft {
	d.Name = name
	return d
}

// WithPassword returns a copy of the draft with password set
func (d CreateDraft) WithPassword(password string) CreateDraft {
	d.Password = password
	return d
}

// RegenerateSalt returns a copy of the draft with a new salt of
// crypto.DefaultSaltLength characters
func (d CreateDraft) RegenerateSalt() (CreateDraft, error) {
	salt, err := crypto.NewSalt()
	if err != nil {
		return d, err
	}
	d.Salt = salt

	return d, nil
}

// CreateCheck is the per-field validation state of a draft
type CreateCheck struct {
	Mail     validation.MailStatus
	Name     validation.UsernameStatus
	Password validation.PasswordStrength
}

// Check validates every field of the draft
func (d CreateDraft) Check() CreateCheck {
	return CreateCheck{
		Mail:     validation.CheckMail(d.Mail),
		Name:     validation.CheckUsername(d.Name),
		Password: validation.CheckPasswordStrength(d.Password),
	}
}

// Submittable is true when all three fields are Good
func (c CreateCheck) Submittable() bool {
	return c.Mail == validation.MailGood &&
		c.Name == validation.UsernameGood &&
		c.Password == validation.PasswordGood
}

// Err joins the errors of every failing field
func (c CreateCheck) Err() error {
	return errors.Join(c.Mail.Err(), c.Name.Err(), c.Password.Err())
}

// CreateStatus is the outcome of a submitted create flow
type CreateStatus int

const (
	CreateNotSubmittable CreateStatus = iota
	CreateRejectedDuplicateName
	CreateCreated
)

func (s CreateStatus) String() string {
	switch s {
	case CreateNotSubmittable:
		return "not_submittable"
	case CreateRejectedDuplicateName:
		return "rejected_duplicate_name"
	case CreateCreated:
		return "created"
	default:
		return fmt.Sprintf("CreateStatus(%d)", int(s))
	}
}

// CreateResult содержит результат создания аккаунта
type CreateResult struct {
	User   *models.User // только для CreateCreated
	Check  CreateCheck
	Status CreateStatus
}

// Create submits the draft
func (s *Service) Create(ctx context.Context, d CreateDraft) (CreateResult, error) {
	check := d.Check()
	if !check.Submittable() {
		return CreateResult{Status: CreateNotSubmittable, Check: check}, nil
	}
	if len(d.Salt) != crypto.DefaultSaltLength {
		return CreateResult{}, fmt.Errorf("create draft salt must be %d characters, got %d",
			crypto.DefaultSaltLength, len(d.Salt))
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// Быстрая проверка для UX, реальная защита - UNIQUE в хранилище
	exists, err := s.store.UserExists(ctx, d.Name)
	if err != nil {
		return CreateResult{}, fmt.Errorf("failed to check user: %w", err)
	}
	if exists {
		s.logger.InfoContext(ctx, "account name taken", "name", d.Name)
		return CreateResult{Status: CreateRejectedDuplicateName, Check: check}, nil
	}

	user := &models.User{
		ID:   uuid.New().String(),
		Mail: d.Mail,
		Name: d.Name,
		Hash: crypto.ComputeHash(d.Password, d.Salt),
		Salt: d.Salt,
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, storage.ErrDuplicateName) {
			s.logger.InfoContext(ctx, "account name taken on insert", "name", d.Name)
			return CreateResult{Status: CreateRejectedDuplicateName, Check: check}, nil
		}
		return CreateResult{}, fmt.Errorf("failed to create user: %w", err)
	}

	s.logger.InfoContext(ctx, "account created", "name", user.Name, "id", user.ID)

	return CreateResult{Status: CreateCreated, Check: check, User: user}, nil
}
