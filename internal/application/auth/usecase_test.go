package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cierres-api/internal/application/auth"
	"github.com/jhoicas/cierres-api/internal/application/dto"
	"github.com/jhoicas/cierres-api/internal/domain"
	"github.com/jhoicas/cierres-api/internal/domain/entity"
	pkgjwt "github.com/jhoicas/cierres-api/pkg/jwt"
)

type memUsers map[string]*entity.User

func (m memUsers) Create(_ context.Context, u *entity.User) error {
	m[u.Email] = u
	return nil
}

func (m memUsers) GetByID(_ context.Context, id string) (*entity.User, error) {
	for _, u := range m {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m memUsers) GetByEmail(_ context.Context, email string) (*entity.User, error) {
	return m[email], nil
}

type memStations map[string]*entity.Station

func (m memStations) Create(_ context.Context, s *entity.Station) error { m[s.ID] = s; return nil }
func (m memStations) GetByID(_ context.Context, id string) (*entity.Station, error) {
	return m[id], nil
}
func (m memStations) GetByCode(context.Context, string) (*entity.Station, error) { return nil, nil }
func (m memStations) List(context.Context, int, int) ([]*entity.Station, error) { return nil, nil }

const (
	secret    = "test-secret"
	stationID = "11111111-1111-1111-1111-111111111111"
)

func newUC() (*auth.AuthUseCase, memUsers) {
	users := memUsers{}
	stations := memStations{stationID: {ID: stationID, Code: "EST-001"}}
	return auth.NewAuthUseCase(users, stations, auth.JWTConfig{Secret: secret, ExpMinutes: 60, Issuer: "test"}), users
}

func TestRegisterYLogin(t *testing.T) {
	uc, users := newUC()
	ctx := context.Background()

	out, err := uc.RegisterUser(ctx, dto.RegisterRequest{
		Email: "laura@estacion.com", Password: "secreto123", StationID: stationID, Role: entity.RoleEncargado,
	})
	require.NoError(t, err)
	assert.Equal(t, "laura@estacion.com", out.Name, "sin nombre se usa el email")
	assert.NotEqual(t, "secreto123", users["laura@estacion.com"].PasswordHash)

	login, err := uc.Login(ctx, dto.LoginRequest{Email: "laura@estacion.com", Password: "secreto123"})
	require.NoError(t, err)

	userID, st, role, err := pkgjwt.Parse(secret, login.Token)
	require.NoError(t, err)
	assert.Equal(t, out.ID, userID)
	assert.Equal(t, stationID, st)
	assert.Equal(t, entity.RoleEncargado, role)
}

func TestRegister_Errores(t *testing.T) {
	uc, _ := newUC()
	ctx := context.Background()

	_, err := uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "12345678", Role: entity.RolePlayero})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "playero sin estación")

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "12345678", StationID: "otra"})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "a@b.com", Password: "12345678", Role: "bodeguero"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@red.com", Password: "12345678", Role: entity.RoleAdmin})
	require.NoError(t, err, "el admin de la red no necesita estación")

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "admin@red.com", Password: "12345678", Role: entity.RoleAdmin})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Errores(t *testing.T) {
	uc, users := newUC()
	ctx := context.Background()

	_, err := uc.Login(ctx, dto.LoginRequest{Email: "nadie@x.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.RegisterUser(ctx, dto.RegisterRequest{Email: "p@x.com", Password: "correcta1", StationID: stationID})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "p@x.com", Password: "incorrecta"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	users["p@x.com"].Status = "inactive"
	_, err = uc.Login(ctx, dto.LoginRequest{Email: "p@x.com", Password: "correcta1"})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
