package identity

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// IDTokenVerifier is satisfied by *auth.Client.
type IDTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// FirebaseResolver accepts Firebase ID tokens and maps the Firebase UID to the
// doctor registered with that externalUID.
type FirebaseResolver struct {
	Verifier IDTokenVerifier
	Doctors  DoctorLookup
}

// NewFirebaseResolver builds the Firebase app from a service account file.
func NewFirebaseResolver(ctx context.Context, credentialsFile string, doctors DoctorLookup) (*FirebaseResolver, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, nil, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase: error initializing app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase: error getting Auth client: %w", err)
	}
	return &FirebaseResolver{Verifier: client, Doctors: doctors}, nil
}

func (r *FirebaseResolver) Resolve(ctx context.Context, token string) (string, error) {
	uid, err := r.ExternalUID(ctx, token)
	if err != nil {
		return "", err
	}
	doctor, err := r.Doctors.GetByExternalUID(ctx, uid)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUnknownDoctor, err)
	}
	return doctor.ID, nil
}

// ExternalUID verifies a Firebase ID token and returns its UID. Registration
// uses it to link an account to the identity that signed in.
func (r *FirebaseResolver) ExternalUID(ctx context.Context, idToken string) (string, error) {
	verified, err := r.Verifier.VerifyIDToken(ctx, idToken)
	if err != nil || verified == nil || verified.UID == "" {
		return "", ErrInvalidToken
	}
	return verified.UID, nil
}
