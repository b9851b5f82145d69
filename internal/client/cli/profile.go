package cli

import (
	"context"
	"errors"
	"fmt"
)

func (a *App) showProfile(ctx context.Context) error {
	u, err := a.profile.Get(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("Name:  %s\n", u.Name)
	fmt.Printf("Email: %s\n", u.Email)
	if u.Phone != "" {
		fmt.Printf("Phone: %s\n", u.Phone)
	}
	if u.HasCV {
		fmt.Println("CV:    uploaded")
	} else {
		fmt.Println("CV:    not uploaded")
	}
	return nil
}

// editProfile prompts per field with the current value as the default, so
// pressing Enter keeps a field unchanged.
func (a *App) editProfile(ctx context.Context) error {
	u, err := a.profile.Get(ctx)
	if err != nil {
		return err
	}

	if u.Name, err = a.promptOr("Name", u.Name); err != nil {
		return err
	}
	if u.Email, err = a.promptOr("Email", u.Email); err != nil {
		return err
	}
	if u.Phone, err = a.promptOr("Phone", u.Phone); err != nil {
		return err
	}

	updated, err := a.profile.Update(ctx, u)
	if err != nil {
		return err
	}
	a.userName = updated.Name
	fmt.Println("Profile updated.")
	return nil
}

func (a *App) uploadCV(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.New("usage: uploadcv <path-to-file>")
	}
	if err := a.profile.UploadCV(ctx, args[0]); err != nil {
		return err
	}
	fmt.Println("CV uploaded.")
	return nil
}
