package users

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"

	"resumegen-backend/internal/auth"
	"resumegen-backend/internal/extract"
	"resumegen-backend/internal/generate"
	"resumegen-backend/internal/storage/object"
	"resumegen-backend/internal/telemetry"
)

// ErrInvalidCredentials covers both unknown email and wrong password; the
// two are never distinguished to the caller.
var ErrInvalidCredentials = errors.New("invalid email or password")

// ErrAccountInactive rejects login on an account that never completed
// activation.
var ErrAccountInactive = errors.New("account is not activated")

// Mailer sends outbound account email. Failures are logged, never fatal.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// ProfileExtractor turns raw resume text into a structured profile draft.
type ProfileExtractor interface {
	ExtractProfile(ctx context.Context, resumeText string) (generate.TailoredResume, error)
}

// Service implements registration, activation, login and profile management.
type Service struct {
	Repo        Repo
	Sessions    auth.SessionStore
	Signer      *auth.Signer
	Mail        Mailer
	Store       object.ObjectStore
	Profiles    ProfileExtractor
	FrontendURL string
}

func NewService(repo Repo, sessions auth.SessionStore, signer *auth.Signer, mail Mailer, store object.ObjectStore, profiles ProfileExtractor, frontendURL string) *Service {
	return &Service{
		Repo:        repo,
		Sessions:    sessions,
		Signer:      signer,
		Mail:        mail,
		Store:       store,
		Profiles:    profiles,
		FrontendURL: strings.TrimRight(frontendURL, "/"),
	}
}

// Register creates an inactive account and sends the activation email.
// Email delivery is best-effort: a send failure is logged and the account
// is still created.
func (s *Service) Register(ctx context.Context, in RegisterInput) (User, error) {
	if s == nil || s.Repo == nil {
		return User{}, errors.New("users service not configured")
	}

	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return User{}, fmt.Errorf("hash password: %w", err)
	}

	user := User{
		ID:           uuid.NewString(),
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		Email:        in.Email,
		PasswordHash: hash,
		IsActive:     false,
	}
	contact := ContactDetails{Email: in.Email}
	if err := s.Repo.Create(ctx, user, contact); err != nil {
		return User{}, err
	}

	s.sendActivationEmail(ctx, user.Email)
	return user, nil
}

func (s *Service) sendActivationEmail(ctx context.Context, email string) {
	if s.Mail == nil || s.Signer == nil {
		return
	}
	token := s.Signer.Sign(email)
	link := fmt.Sprintf("%s/activate?token=%s", s.FrontendURL, token)
	body := "Click the link to activate your account: " + link
	if err := s.Mail.Send(ctx, email, "Activate Your Account", body); err != nil {
		telemetry.Error("users.activation_email_failed", map[string]any{"error": err.Error()})
	}
}

// Activate verifies an activation token and flips the account to active.
// Activation is one-way; re-activating an already active account is not an
// error, just a different message.
func (s *Service) Activate(ctx context.Context, token string) (string, error) {
	if s == nil || s.Repo == nil || s.Signer == nil {
		return "", errors.New("users service not configured")
	}

	email, err := s.Signer.Verify(token, auth.ActivationTokenMaxAge)
	if err != nil {
		return "", err
	}

	alreadyActive, err := s.Repo.Activate(ctx, email)
	if err != nil {
		return "", err
	}
	if alreadyActive {
		return "Account already activated", nil
	}
	return "Account activated successfully", nil
}

// Login verifies the credentials and issues a session token.
func (s *Service) Login(ctx context.Context, email, password string) (string, error) {
	if s == nil || s.Repo == nil || s.Sessions == nil {
		return "", errors.New("users service not configured")
	}

	user, err := s.Repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", err
	}
	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return "", ErrAccountInactive
	}

	token, err := auth.NewSessionToken()
	if err != nil {
		return "", err
	}
	if err := s.Sessions.Set(ctx, token, user.ID, auth.SessionTTL); err != nil {
		return "", fmt.Errorf("store session: %w", err)
	}
	return token, nil
}

// Logout revokes the session immediately, ahead of its natural TTL expiry.
func (s *Service) Logout(ctx context.Context, token string) error {
	if s == nil || s.Sessions == nil {
		return errors.New("users service not configured")
	}
	return s.Sessions.Delete(ctx, token)
}

func (s *Service) GetProfile(ctx context.Context, userID string) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errors.New("users service not configured")
	}
	if strings.TrimSpace(userID) == "" {
		return Profile{}, errors.New("user id is required")
	}
	return s.Repo.GetProfile(ctx, userID)
}

// UpdateProfile applies a partial profile update. Only the enumerated
// mutable fields can change; provided sub-entity lists replace the stored
// ones wholesale.
func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (Profile, error) {
	if s == nil || s.Repo == nil {
		return Profile{}, errors.New("users service not configured")
	}
	if err := s.Repo.UpdateProfile(ctx, userID, update); err != nil {
		return Profile{}, err
	}
	return s.Repo.GetProfile(ctx, userID)
}

// AttachResumeFile stores an uploaded resume document, records it against
// the user, and best-effort extracts its text and a structured profile
// draft. Neither extraction step can fail the upload; the text is empty and
// the profile nil when they do.
func (s *Service) AttachResumeFile(ctx context.Context, userID, fileName string, r io.Reader) (ResumeFile, string, *generate.TailoredResume, error) {
	if s == nil || s.Repo == nil || s.Store == nil {
		return ResumeFile{}, "", nil, errors.New("users service not configured")
	}

	if _, err := s.Repo.GetByID(ctx, userID); err != nil {
		return ResumeFile{}, "", nil, err
	}

	storageKey, _, _, err := s.Store.Save(ctx, userID, fileName, r)
	if err != nil {
		return ResumeFile{}, "", nil, fmt.Errorf("store resume: %w", err)
	}

	file := ResumeFile{StorageKey: storageKey, FileName: fileName}
	if err := s.Repo.UpsertResumeFile(ctx, userID, file); err != nil {
		return ResumeFile{}, "", nil, err
	}

	text, err := extract.ExtractText(ctx, s.Store, storageKey, fileName)
	if err != nil {
		telemetry.Warn("users.resume_text_extraction_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		text = ""
	}
	return file, text, s.extractResumeProfile(ctx, userID, text), nil
}

// extractResumeProfile runs the field-extraction prompt over freshly
// extracted resume text. Nil when no extractor is wired, the text is blank,
// or the model call fails; the upload already succeeded by this point.
func (s *Service) extractResumeProfile(ctx context.Context, userID, text string) *generate.TailoredResume {
	if s.Profiles == nil || strings.TrimSpace(text) == "" {
		return nil
	}
	profile, err := s.Profiles.ExtractProfile(ctx, text)
	if err != nil {
		telemetry.Warn("users.resume_profile_extraction_failed", map[string]any{
			"user_id": userID,
			"error":   err.Error(),
		})
		return nil
	}
	return &profile
}
