package services

import (
	"testing"

	"challenge-reward-system/models"
)

func TestUserDisplay(t *testing.T) {
	pic := "https://cdn.example.com/avatars/lena.jpg"
	first := "Lena"
	u := &models.ChallengeUser{
		ExternalUserID:    "3b9f6d1a-8c7e-4f20-9f31-aa1204d7c55e",
		Username:          "lena_lifts",
		ProfilePictureURL: &pic,
		FirstName:         &first,
	}

	view := UserDisplay(u)
	if view == nil {
		t.Fatal("UserDisplay returned nil for a synced user")
	}
	if view["username"] != "lena_lifts" {
		t.Errorf("username = %v, want lena_lifts", view["username"])
	}
	if view["external_user_id"] != "3b9f6d1a-8c7e-4f20-9f31-aa1204d7c55e" {
		t.Errorf("external_user_id = %v, want the mirror's ID", view["external_user_id"])
	}
	if got := view["profile_picture_url"].(*string); got == nil || *got != pic {
		t.Errorf("profile_picture_url = %v, want %s", got, pic)
	}
}

func TestUserDisplayMissingMirror(t *testing.T) {
	if view := UserDisplay(nil); view != nil {
		t.Errorf("UserDisplay(nil) = %v, want nil", view)
	}
}
