// Package bootstrap crea el primer administrador cuando el sistema no
// tiene ninguno.
package bootstrap

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/dropDatabas3/dealerdesk/internal/domain/repository"
	"github.com/dropDatabas3/dealerdesk/internal/observability/logger"
	"github.com/dropDatabas3/dealerdesk/internal/security/password"
)

// AdminConfig configura el bootstrap del admin.
type AdminConfig struct {
	Users repository.UserRepository

	// Credenciales precargadas (config o flags). Vacías = prompt o skip.
	Email    string
	Password string

	// Prompt habilita la carga interactiva cuando faltan credenciales.
	Prompt bool
	Policy password.Policy
}

// ErrSkipped indica que no había credenciales ni prompt habilitado.
var ErrSkipped = errors.New("bootstrap: admin credentials not provided")

// EnsureAdmin garantiza que exista al menos un usuario con rol admin.
// Retorna el usuario creado o promovido, o nil si ya había un admin.
func EnsureAdmin(ctx context.Context, cfg AdminConfig) (*repository.User, error) {
	log := logger.From(ctx).With(logger.Component("bootstrap"))

	// Paso 1: ¿ya hay admin?
	has, err := HasAdmin(ctx, cfg.Users)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: check admins: %w", err)
	}
	if has {
		log.Debug("admin user detected, skipping bootstrap")
		return nil, nil
	}

	// Paso 2: credenciales
	email, plain := strings.TrimSpace(cfg.Email), cfg.Password
	if email == "" || plain == "" {
		if !cfg.Prompt {
			return nil, ErrSkipped
		}
		email, plain, err = PromptCredentials(os.Stdin, os.Stdout)
		if err != nil {
			return nil, err
		}
	}

	// Paso 3: crear o promover
	u, err := CreateAdmin(ctx, cfg.Users, cfg.Policy, email, plain)
	if err != nil {
		return nil, err
	}
	log.Info("admin bootstrapped", logger.UserID(u.ID), logger.Email(u.Email))
	return u, nil
}

// HasAdmin recorre los usuarios buscando al menos uno con rol admin.
func HasAdmin(ctx context.Context, users repository.UserRepository) (bool, error) {
	cursor := ""
	for {
		page, next, err := users.List(ctx, repository.UserFilter{Limit: 100, Cursor: cursor})
		if err != nil {
			return false, err
		}
		for i := range page {
			if page[i].HasRole(repository.RoleAdmin) {
				return true, nil
			}
		}
		if next == "" {
			return false, nil
		}
		cursor = next
	}
}

// CreateAdmin crea un admin con password. Si el email ya existe le agrega
// el rol admin y le reemplaza la password.
func CreateAdmin(ctx context.Context, users repository.UserRepository, policy password.Policy, email, plain string) (*repository.User, error) {
	email = repository.NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, errors.New("bootstrap: invalid email")
	}
	if ok, reasons := policy.ValidateFor(plain, email); !ok {
		return nil, fmt.Errorf("bootstrap: weak password (%s)", strings.Join(reasons, ", "))
	}

	hash, err := password.Hash(plain)
	if err != nil {
		return nil, fmt.Errorf("bootstrap: hash password: %w", err)
	}

	existing, err := users.GetByEmail(ctx, email)
	switch {
	case err == nil:
		return users.Update(ctx, existing.ID, repository.UserPatch{
			Roles:        repository.MergeRoles(existing.Roles, repository.RoleAdmin),
			PasswordHash: &hash,
		})
	case repository.IsNotFound(err):
		return users.Create(ctx, repository.CreateUserInput{
			Email:        email,
			DisplayName:  "Administrator",
			Roles:        []string{repository.RoleAdmin},
			PasswordHash: hash,
		})
	default:
		return nil, fmt.Errorf("bootstrap: lookup user: %w", err)
	}
}

// PromptCredentials pide email y password por terminal. La password se lee
// sin eco cuando in es una terminal.
func PromptCredentials(in *os.File, out io.Writer) (email, plain string, err error) {
	reader := bufio.NewReader(in)

	fmt.Fprint(out, "Admin Email: ")
	email, err = reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", "", err
	}
	email = strings.TrimSpace(email)
	if email == "" {
		return "", "", errors.New("email cannot be empty")
	}

	plain, err = readSecret(in, reader, out, "Admin Password: ")
	if err != nil {
		return "", "", err
	}
	confirm, err := readSecret(in, reader, out, "Confirm Password: ")
	if err != nil {
		return "", "", err
	}
	if plain != confirm {
		return "", "", errors.New("passwords do not match")
	}
	return email, plain, nil
}

func readSecret(in *os.File, reader *bufio.Reader, out io.Writer, label string) (string, error) {
	fmt.Fprint(out, label)
	fd := int(in.Fd())
	if term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		fmt.Fprintln(out)
		return string(b), err
	}
	// stdin redirigido (pipes, CI)
	s, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(s, "\r\n"), nil
}
