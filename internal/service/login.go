package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	domainauth "github.com/itec-institute/portal/internal/domain/auth"
	apperrors "github.com/itec-institute/portal/internal/errors"
	"github.com/itec-institute/portal/internal/observability/metrics"
	"github.com/itec-institute/portal/internal/observability/statsd"
	"github.com/itec-institute/portal/internal/ports"
)

// User-facing login messages and their toast durations.
const (
	MsgInvalidCredentials = "Incorrect email or password. Please try again."
	MsgLoginFault         = "An error occurred during login. Please try again."
	welcomeFormat         = "Welcome, %s!"

	SuccessToastDuration = 3000
	ErrorToastDuration   = 5000
)

const (
	defaultSessionTTL    = 8 * time.Hour
	defaultLookupTimeout = 10 * time.Second
)

var errSessionExpired = errors.New("session expired")

// LoginServiceOptions groups dependencies for LoginService.
type LoginServiceOptions struct {
	Lookup   ports.CredentialLookup // Required
	Sessions ports.SessionStore     // Required
	Router   *SessionRouter         // Optional: defaults to a router sharing Logger
	Logger   *slog.Logger           // Optional
	Metrics  statsd.Sink            // Optional

	SessionTTL    time.Duration // default 8h
	LookupTimeout time.Duration // default 10s

	// Overridable for tests.
	Now   func() time.Time
	NewID func() string
}

// LoginService runs the credential submission flow and owns session lifecycle for the login surface.
type LoginService struct {
	lookup        ports.CredentialLookup
	sessions      ports.SessionStore
	router        *SessionRouter
	logger        *slog.Logger
	metrics       statsd.Sink
	sessionTTL    time.Duration
	lookupTimeout time.Duration
	now           func() time.Time
	newID         func() string
}

// NewLoginService constructs a LoginService.
func NewLoginService(opts LoginServiceOptions) (*LoginService, error) {
	if opts.Lookup == nil {
		return nil, errors.New("CredentialLookup is required")
	}
	if opts.Sessions == nil {
		return nil, errors.New("SessionStore is required")
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	router := opts.Router
	if router == nil {
		router = NewSessionRouter(logger)
	}

	svc := &LoginService{
		lookup:        opts.Lookup,
		sessions:      opts.Sessions,
		router:        router,
		logger:        logger.With("component", "login_service"),
		metrics:       opts.Metrics,
		sessionTTL:    opts.SessionTTL,
		lookupTimeout: opts.LookupTimeout,
		now:           opts.Now,
		newID:         opts.NewID,
	}
	if svc.sessionTTL <= 0 {
		svc.sessionTTL = defaultSessionTTL
	}
	if svc.lookupTimeout <= 0 {
		svc.lookupTimeout = defaultLookupTimeout
	}
	if svc.now == nil {
		svc.now = time.Now
	}
	if svc.newID == nil {
		svc.newID = generateSessionID
	}
	return svc, nil
}

// Router exposes the session router used by the service.
func (s *LoginService) Router() *SessionRouter { return s.router }

// SubmitInput carries raw form values. The form layer has already validated them.
type SubmitInput struct {
	SessionID string
	Email     string
	Password  string
}

// SubmitResult is the outcome of one credential submission.
// Notifications always holds exactly one entry. Navigation is set only on success.
// Failure carries an invalid_credentials or lookup_fault AppError when the login did not succeed.
type SubmitResult struct {
	Session       domainauth.Session
	Notifications []domainauth.Notification
	Navigation    *domainauth.NavigationCommand
	Failure       error
}

// Succeeded reports whether the submission authenticated the session.
func (r *SubmitResult) Succeeded() bool { return r.Failure == nil && r.Navigation != nil }

// OnCredentialsSubmitted resolves the credentials and updates the session.
// The returned error is reserved for session storage failures and state conflicts;
// a failed login is reported through SubmitResult.Failure.
func (s *LoginService) OnCredentialsSubmitted(ctx context.Context, in SubmitInput) (*SubmitResult, error) {
	sess, err := s.loadOrCreate(ctx, in.SessionID)
	if err != nil {
		return nil, err
	}

	if err := sess.Apply(domainauth.EventSubmit); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeConflict, "login cannot start from the current session state")
	}
	sess.SubmittedAt = s.now()
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "save session")
	}

	lookupCtx, cancel := context.WithTimeout(ctx, s.lookupTimeout)
	started := s.now()
	rec, ok, lookupErr := s.lookup.Authenticate(lookupCtx, in.Email, in.Password)
	elapsed := s.now().Sub(started)
	cancel()

	// The outcome must be persisted even if the caller went away mid-lookup,
	// otherwise the session would stay in flight until it expires.
	saveCtx := context.WithoutCancel(ctx)

	switch {
	case lookupErr != nil:
		s.logger.ErrorContext(ctx, "credential lookup failed", "session_id", sess.ID, "error", lookupErr)
		metrics.EmitLoginAttempt(s.metrics, metrics.LoginMetric{Outcome: metrics.OutcomeFault, Duration: elapsed, Err: lookupErr})
		return s.fail(saveCtx, sess, domainauth.EventFault, MsgLoginFault,
			apperrors.LookupFault(lookupErr, "credential lookup failed"))
	case !ok:
		s.logger.InfoContext(ctx, "login rejected", "session_id", sess.ID)
		metrics.EmitLoginAttempt(s.metrics, metrics.LoginMetric{Outcome: metrics.OutcomeRejected, Duration: elapsed})
		return s.fail(saveCtx, sess, domainauth.EventNoMatch, MsgInvalidCredentials,
			apperrors.InvalidCredentials("no user matches the submitted credentials"))
	default:
		metrics.EmitLoginAttempt(s.metrics, metrics.LoginMetric{
			Outcome:  metrics.OutcomeSuccess,
			Role:     string(rec.Identity().Role),
			Duration: elapsed,
		})
		return s.succeed(saveCtx, sess, rec)
	}
}

func (s *LoginService) succeed(ctx context.Context, sess domainauth.Session, rec domainauth.UserRecord) (*SubmitResult, error) {
	if err := sess.Apply(domainauth.EventMatch); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "complete login")
	}

	identity := rec.Identity()
	path := s.router.RouteForRole(identity.Role)
	if rec.RouteSegment != "" && domainauth.DashboardPath(rec.RouteSegment) != path {
		s.logger.DebugContext(ctx, "record route differs from role route; using role route",
			"record_route", rec.RouteSegment,
			"role", string(identity.Role),
			"path", path,
		)
	}

	// Rotate the session ID on privilege change.
	previousID := sess.ID
	sess.ID = s.newID()
	sess.Authenticate(identity)
	sess.ExpiresAt = s.now().Add(s.sessionTTL)

	welcome := domainauth.Notification{
		Severity:          domainauth.SeveritySuccess,
		Message:           fmt.Sprintf(welcomeFormat, identity.Name),
		DisplayDurationMs: SuccessToastDuration,
	}
	sess.Flash = append(sess.Flash, welcome)

	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "save session")
	}
	if err := s.sessions.Delete(ctx, previousID); err != nil {
		s.logger.WarnContext(ctx, "failed to delete pre-login session", "session_id", previousID, "error", err)
	}

	s.logger.InfoContext(ctx, "login succeeded",
		"session_id", sess.ID,
		"role", string(identity.Role),
		"path", path,
	)

	return &SubmitResult{
		Session:       sess,
		Notifications: []domainauth.Notification{welcome},
		Navigation:    &domainauth.NavigationCommand{Path: path, Mode: domainauth.NavigatePush},
	}, nil
}

func (s *LoginService) fail(
	ctx context.Context,
	sess domainauth.Session,
	ev domainauth.Event,
	message string,
	failure error,
) (*SubmitResult, error) {
	if err := sess.Apply(ev); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "record failed login")
	}
	// Failed is not terminal; the session returns to Idle so the user can retry.
	if err := sess.Apply(domainauth.EventReset); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "reset failed login")
	}
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "save session")
	}

	return &SubmitResult{
		Session: sess,
		Notifications: []domainauth.Notification{{
			Severity:          domainauth.SeverityError,
			Message:           message,
			DisplayDurationMs: ErrorToastDuration,
		}},
		Failure: failure,
	}, nil
}

// loadOrCreate returns the stored session for id, or a fresh anonymous one under the same ID
// when it is unknown, expired, or due to expire before a lookup could finish. An attempt left
// in flight for longer than twice the lookup timeout is treated as a fault so the session does
// not stay locked.
func (s *LoginService) loadOrCreate(ctx context.Context, id string) (domainauth.Session, error) {
	if id == "" {
		return domainauth.NewSession(s.newID(), s.now().Add(s.sessionTTL)), nil
	}

	sess, err := s.GetSession(ctx, id)
	switch {
	case err == nil:
	case apperrors.IsNotFound(err):
		return domainauth.NewSession(id, s.now().Add(s.sessionTTL)), nil
	default:
		return domainauth.Session{}, err
	}

	if sess.ExpiresAt.Before(s.now().Add(2 * s.lookupTimeout)) {
		// The store would refuse to save the outcome once the session lapses mid-lookup.
		s.logger.DebugContext(ctx, "session too close to expiry; starting a fresh one", "session_id", id)
		return domainauth.NewSession(id, s.now().Add(s.sessionTTL)), nil
	}

	if sess.State == domainauth.StateSubmitting && s.abandoned(*sess) {
		s.logger.WarnContext(ctx, "recovering abandoned login attempt",
			"session_id", sess.ID,
			"submitted_at", sess.SubmittedAt,
		)
		if err := sess.Apply(domainauth.EventFault); err != nil {
			return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "recover session")
		}
		if err := sess.Apply(domainauth.EventReset); err != nil {
			return domainauth.Session{}, apperrors.Wrap(err, apperrors.ErrCodeInternal, "recover session")
		}
	}
	return *sess, nil
}

func (s *LoginService) abandoned(sess domainauth.Session) bool {
	if sess.SubmittedAt.IsZero() {
		return true
	}
	return s.now().Sub(sess.SubmittedAt) > 2*s.lookupTimeout
}

// InFlight reports whether sess has a login attempt that is still running.
// Abandoned attempts do not count.
func (s *LoginService) InFlight(sess domainauth.Session) bool {
	return sess.Loading && !s.abandoned(sess)
}

// MountResult is the outcome of displaying the login surface.
type MountResult struct {
	Session    domainauth.Session
	Navigation *domainauth.NavigationCommand
}

// Mount loads the session for id and decides whether the login surface should redirect away.
// Unknown or expired sessions mount as anonymous and are not persisted.
func (s *LoginService) Mount(ctx context.Context, id string) (*MountResult, error) {
	var sess domainauth.Session
	if id != "" {
		got, err := s.GetSession(ctx, id)
		switch {
		case err == nil:
			sess = *got
		case apperrors.IsNotFound(err):
		default:
			return nil, err
		}
	}
	return &MountResult{Session: sess, Navigation: s.router.OnMount(sess)}, nil
}

// NewSession creates and persists an anonymous idle session.
func (s *LoginService) NewSession(ctx context.Context) (*domainauth.Session, error) {
	sess := domainauth.NewSession(s.newID(), s.now().Add(s.sessionTTL))
	if err := s.sessions.Save(ctx, sess); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "save session")
	}
	return &sess, nil
}

// GetSession retrieves a session by ID.
// Missing and expired sessions both yield a not_found AppError; expired ones are deleted.
func (s *LoginService) GetSession(ctx context.Context, sessionID string) (*domainauth.Session, error) {
	if sessionID == "" {
		return nil, apperrors.NotFound("session ID is required")
	}

	sess, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		if errors.Is(err, ports.ErrSessionNotFound) {
			return nil, apperrors.Wrap(err, apperrors.ErrCodeNotFound, "get session")
		}
		// Store timeouts and cancellations keep their own codes so callers can tell them apart.
		return nil, apperrors.MapStoreError(fmt.Errorf("get session: %w", err))
	}

	if sess.Expired(s.now()) {
		if deleteErr := s.sessions.Delete(ctx, sessionID); deleteErr != nil {
			return nil, apperrors.Wrap(
				errors.Join(errSessionExpired, fmt.Errorf("delete session: %w", deleteErr)),
				apperrors.ErrCodeInternal, "get session",
			)
		}
		return nil, apperrors.Wrap(errSessionExpired, apperrors.ErrCodeNotFound, "get session")
	}

	return &sess, nil
}

// TakeFlash pops the pending notifications queued on the session.
func (s *LoginService) TakeFlash(ctx context.Context, sessionID string) ([]domainauth.Notification, error) {
	sess, err := s.GetSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(sess.Flash) == 0 {
		return nil, nil
	}

	flash := sess.Flash
	sess.Flash = nil
	if err := s.sessions.Save(ctx, *sess); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternal, "save session")
	}
	return flash, nil
}

// Logout removes a session.
func (s *LoginService) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}

	if err := s.sessions.Delete(ctx, sessionID); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternal, "delete session")
	}

	s.logger.InfoContext(ctx, "logout", "session_id", sessionID)
	return nil
}

// generateSessionID creates a cryptographically secure random session ID.
func generateSessionID() string {
	return uuid.New().String()
}
