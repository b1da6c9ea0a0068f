package app

import (
	"context"

	"github.com/kiruthikag2611/Planify/internal/auth"
	"github.com/kiruthikag2611/Planify/internal/storage"
)

// Login records the sign in on the user's profile.
func (a *App) Login(ctx context.Context, user auth.User) (storage.Profile, error) {
	p := storage.Profile{
		UserID:      user.ID,
		Email:       user.Email,
		DisplayName: user.DisplayName,
		LastLogin:   a.now().UTC(),
	}
	if err := a.Storage.SaveProfile(ctx, p); err != nil {
		return storage.Profile{}, a.report(err)
	}
	return a.Storage.GetProfile(ctx, user.ID)
}

func (a *App) Logout(user auth.User) {
	a.Questionnaires.Reset(user.ID)
}

func (a *App) Profile(ctx context.Context, user auth.User) (storage.Profile, error) {
	p, err := a.Storage.GetProfile(ctx, user.ID)
	if err != nil {
		return storage.Profile{}, a.report(err)
	}
	return p, nil
}
