package impl

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"passport/config"
	deliverycontext "passport/internal/delivery/context"
	"passport/internal/domain/entity"
	domainerrors "passport/internal/domain/errors"
	"passport/internal/domain/repository"
	"passport/internal/domain/service"

	"go.uber.org/fx"
)

// directoryHandler logs users in by binding against an LDAP directory. The
// directory owns the identity: its email attribute replaces whatever
// username was submitted.
type directoryHandler struct {
	users     repository.UserRepository
	directory service.Directory
	emailAttr string
	idAttr    string
	groupAttr string
	logger    *slog.Logger
}

// DirectorySchemeParams holds dependencies for the DIRECTORY scheme, injected by Fx.
type DirectorySchemeParams struct {
	fx.In

	Config    *config.Config
	Users     repository.UserRepository
	Directory service.Directory `optional:"true"`
	Logger    *slog.Logger
}

// NewDirectoryScheme registers the DIRECTORY scheme when a directory is configured.
func NewDirectoryScheme(params DirectorySchemeParams) SchemeRegistration {
	registration := SchemeRegistration{Scheme: entity.SchemeDirectory}
	if params.Directory == nil || params.Config.Directory == nil {
		return registration
	}

	registration.Handler = NewDirectoryHandler(params.Users, params.Directory, params.Config.Directory, params.Logger)

	return registration
}

// NewDirectoryHandler creates the DIRECTORY handler.
func NewDirectoryHandler(users repository.UserRepository, directory service.Directory, cfg *config.DirectoryConfig, logger *slog.Logger) service.SchemeHandler {
	return &directoryHandler{
		users:     users,
		directory: directory,
		emailAttr: cfg.EmailAttribute,
		idAttr:    cfg.IDAttribute,
		groupAttr: cfg.GroupAttribute,
		logger:    logger,
	}
}

func (h *directoryHandler) log(ctx context.Context) *slog.Logger {
	return deliverycontext.GetLoggerOrDefault(ctx, h.logger)
}

func (h *directoryHandler) Scheme() entity.Scheme {
	return entity.SchemeDirectory
}

// LoadUser finds the directory entry for the submitted username and the local
// account registered under the entry's email.
func (h *directoryHandler) LoadUser(ctx context.Context, req *entity.LoginRequest) (*entity.User, error) {
	if err := requireScheme(req, entity.SchemeDirectory); err != nil {
		return nil, err
	}

	attrs, err := h.directory.Attributes(ctx, h.filter(req), h.emailAttr, h.idAttr, h.groupAttr)
	if err != nil {
		return nil, err
	}
	email := strings.ToLower(first(attrs[h.emailAttr]))
	if email == "" {
		return nil, domainerrors.ErrUserNotFound.WrapMessage("no directory entry with an email")
	}

	user, err := findUser(ctx, h.users.FindByEmail, email)
	if err != nil {
		return nil, err
	}

	for _, group := range attrs[h.groupAttr] {
		if !slices.Contains(user.Groups, group) {
			user.Groups = append(user.Groups, group)
		}
	}

	return user, nil
}

// IsMatched binds with the submitted password, then re-reads the canonical
// email and directory id and rewrites the request identifier to the email.
func (h *directoryHandler) IsMatched(ctx context.Context, req *entity.LoginRequest, user *entity.User) (bool, error) {
	if err := requireScheme(req, entity.SchemeDirectory); err != nil {
		return false, err
	}

	filter := h.filter(req)
	ok, err := h.directory.Bind(ctx, filter, req.Credential)
	if err != nil || !ok {
		return false, err
	}

	attrs, err := h.directory.Attributes(ctx, filter, h.emailAttr, h.idAttr)
	if err != nil {
		return false, err
	}

	email := strings.ToLower(first(attrs[h.emailAttr]))
	if email == "" || !strings.EqualFold(email, user.Email) {
		h.log(ctx).Warn("Directory email changed during login",
			slog.String("identifier", req.Identifier),
			slog.String("directory_email", email),
		)

		return false, nil
	}

	req.Canonicalize(email)
	if id := first(attrs[h.idAttr]); id != "" {
		user.SetAttr(entity.ExtensionDirectoryID, id)
	}
	if dn := first(attrs[service.DirectoryDNAttribute]); dn != "" {
		user.SetAttr(entity.ExtensionDirectoryDN, dn)
	}

	return true, nil
}

func (h *directoryHandler) filter(req *entity.LoginRequest) string {
	return h.directory.Filter(req.Identifier, req.DirectoryID)
}

func first(values []string) string {
	if len(values) == 0 {
		return ""
	}

	return strings.TrimSpace(values[0])
}
