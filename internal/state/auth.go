package state

import "github.com/five82/roost/internal/domain"

// AuthState is the auth partition of the state tree.
type AuthState struct {
	AuthorizationStatus domain.AuthorizationStatus
	User                *domain.AuthInfo
	FavoriteCount       int
}

func initialAuthState() AuthState {
	return AuthState{AuthorizationStatus: domain.AuthStatusUnknown}
}

// ReduceAuth applies a to the auth partition.
func ReduceAuth(s AuthState, a Action) AuthState {
	switch a := a.(type) {
	case RequireAuthorization:
		s.AuthorizationStatus = a.Status
		return s
	case SetUser:
		s.User = a.User
		return s
	case SetFavoriteCount:
		s.FavoriteCount = max(a.Count, 0)
		return s
	default:
		return s
	}
}
