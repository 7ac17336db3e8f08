package ops

import (
	"context"
	"fmt"

	"github.com/five82/roost/internal/api"
	"github.com/five82/roost/internal/domain"
	"github.com/five82/roost/internal/state"
)

// CheckAuth verifies the stored session. It always leaves the authorization
// status at AUTH or NO_AUTH.
func (o *Operations) CheckAuth(ctx context.Context) {
	info, err := o.API.CheckLogin(ctx)
	if err != nil {
		o.log().Info("session check failed", "op", "checkAuth", "err", err)
		o.signOut()
		return
	}
	o.signIn(api.AdaptAuthInfo(info))
	o.Store.Dispatch(state.SetFavoriteCount{Count: o.favoriteCountOrZero(ctx)})
}

// Login authenticates and persists the returned token. On failure the user is
// marked signed out and the error is returned for display.
func (o *Operations) Login(ctx context.Context, email, password string) error {
	info, err := o.API.Login(ctx, api.LoginRequest{Email: email, Password: password})
	if err != nil {
		o.signOut()
		return fmt.Errorf("login: %w", err)
	}
	if err := o.Tokens.Save(info.Token); err != nil {
		o.signOut()
		return fmt.Errorf("login: %w", err)
	}
	o.signIn(api.AdaptAuthInfo(info))
	o.Store.Dispatch(state.SetFavoriteCount{Count: o.favoriteCountOrZero(ctx)})
	return nil
}

// Logout forgets the token and signs the user out locally.
func (o *Operations) Logout() {
	if err := o.Tokens.Drop(); err != nil {
		o.log().Warn("dropping token failed", "op", "logout", "err", err)
	}
	o.signOut()
}

func (o *Operations) signIn(user domain.AuthInfo) {
	o.Store.Dispatch(state.RequireAuthorization{Status: domain.AuthStatusAuth})
	o.Store.Dispatch(state.SetUser{User: &user})
}

func (o *Operations) signOut() {
	o.Store.Dispatch(state.RequireAuthorization{Status: domain.AuthStatusNoAuth})
	o.Store.Dispatch(state.SetUser{User: nil})
	o.Store.Dispatch(state.SetFavoriteCount{Count: 0})
}

func (o *Operations) favoriteCountOrZero(ctx context.Context) int {
	favorites, err := o.API.FetchFavorites(ctx)
	if err != nil {
		o.log().Warn("favorite count unavailable", "op", "favoriteCount", "err", err)
		return 0
	}
	return len(favorites)
}
