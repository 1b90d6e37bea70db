package externals

import (
	"context"
	"fmt"
	"sync"

	"firebase.google.com/go/v4"
	"google.golang.org/api/option"
)

var (
	firebaseApp *firebase.App
	firebaseErr error
	once        sync.Once
)

var testMode string
var credentialsFile string

// InitializeFirebase records the run mode and the service account file used
// by VerifyFirebaseToken. The app itself is created lazily.
func InitializeFirebase(testModeArg, credentialsFileArg string) {
	testMode = testModeArg
	credentialsFile = credentialsFileArg
}

func firebaseAppInstance() (*firebase.App, error) {
	once.Do(func() {
		opt := option.WithCredentialsFile(credentialsFile)
		firebaseApp, firebaseErr = firebase.NewApp(context.Background(), nil, opt)
		if firebaseErr != nil {
			firebaseErr = fmt.Errorf("error initializing Firebase Admin SDK: %w", firebaseErr)
		}
	})
	return firebaseApp, firebaseErr
}

// VerifyFirebaseToken returns the uid the token was issued for. In test mode
// the token itself is taken as the uid.
func VerifyFirebaseToken(ctx context.Context, idToken string) (string, error) {
	if testMode != "real" {
		// if test mode, no call to firebase
		return idToken, nil
	}

	app, err := firebaseAppInstance()
	if err != nil {
		return "", err
	}

	authClient, err := app.Auth(ctx)
	if err != nil {
		return "", err
	}

	token, err := authClient.VerifyIDToken(ctx, idToken)
	if err != nil {
		return "", err
	}

	return token.UID, nil
}
