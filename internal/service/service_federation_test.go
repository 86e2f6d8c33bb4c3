package service

import (
	"context"
	"errors"
	"testing"

	"github.com/MKhiriev/go-blog-identity/internal/adapter"
	"github.com/MKhiriev/go-blog-identity/internal/logger"
	"github.com/MKhiriev/go-blog-identity/internal/mock"
	"github.com/MKhiriev/go-blog-identity/internal/store"
	"github.com/MKhiriev/go-blog-identity/internal/validators"
	"github.com/MKhiriev/go-blog-identity/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type federationServiceMocks struct {
	repo      *mock.MockAccountRepository
	tokens    *mock.MockTokenService
	allocator *mock.MockUsernameAllocator
	verifier  *mock.MockIdentityVerifier
}

func newTestFederationService(t *testing.T, ctrl *gomock.Controller, provider string, adminEmails ...string) (FederationService, federationServiceMocks) {
	t.Helper()

	mocks := federationServiceMocks{
		repo:      mock.NewMockAccountRepository(ctrl),
		tokens:    mock.NewMockTokenService(ctrl),
		allocator: mock.NewMockUsernameAllocator(ctrl),
		verifier:  mock.NewMockIdentityVerifier(ctrl),
	}

	// the constructor indexes verifiers by provider name
	mocks.verifier.EXPECT().Provider().Return(provider).AnyTimes()

	svc := NewFederationService(
		mocks.repo,
		mocks.tokens,
		mocks.allocator,
		validators.NewAccountValidator(),
		[]adapter.IdentityVerifier{mocks.verifier},
		adminEmails,
		logger.NewLogger("test"),
	)

	return svc, mocks
}

func TestAuthenticate_UnknownProvider(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestFederationService(t, ctrl, models.ProviderGoogle)

	_, _, err := svc.Authenticate(context.Background(), "myspace", models.FederationRequest{Assertion: "token"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestAuthenticate_EmptyAssertion(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestFederationService(t, ctrl, models.ProviderGoogle)

	_, _, err := svc.Authenticate(context.Background(), models.ProviderGoogle, models.FederationRequest{})
	assert.ErrorIs(t, err, validators.ErrEmptyAssertion)
}

func TestAuthenticate_VerificationFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestFederationService(t, ctrl, models.ProviderGoogle)
	ctx := context.Background()

	mocks.verifier.EXPECT().Verify(ctx, "bad-token").
		Return(models.ExternalIdentity{}, adapter.ErrAssertionRejected)

	_, _, err := svc.Authenticate(ctx, models.ProviderGoogle, models.FederationRequest{Assertion: "bad-token"})
	require.ErrorIs(t, err, ErrUpstreamVerification)
	assert.ErrorIs(t, err, adapter.ErrAssertionRejected)
}

func TestAuthenticate_LinkedAccountLogsIn(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestFederationService(t, ctrl, models.ProviderGoogle)
	ctx := context.Background()

	mocks.verifier.EXPECT().Verify(ctx, "token").Return(models.ExternalIdentity{
		Email: "Jane.Doe@x.com",
		Name:  "Jane Doe",
	}, nil)

	stored := models.Account{ID: "acc-1", Email: "jane.doe@x.com", GoogleLinked: true}
	mocks.repo.EXPECT().FindByEmail(ctx, "jane.doe@x.com").Return(stored, nil)
	mocks.tokens.EXPECT().Issue(ctx, stored).Return(models.Token{SignedString: "jwt"}, nil)

	account, token, err := svc.Authenticate(ctx, models.ProviderGoogle, models.FederationRequest{Assertion: "token"})
	require.NoError(t, err)
	assert.Equal(t, "acc-1", account.ID)
	assert.Equal(t, "jwt", token.SignedString)
}

func TestAuthenticate_LocalAccountNotTakenOver(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestFederationService(t, ctrl, models.ProviderGoogle)
	ctx := context.Background()

	mocks.verifier.EXPECT().Verify(ctx, "token").Return(models.ExternalIdentity{
		Email: "jane.doe@x.com",
		Name:  "Jane Doe",
	}, nil)

	stored := models.Account{ID: "acc-1", Email: "jane.doe@x.com", PasswordHash: "$2a$digest"}
	mocks.repo.EXPECT().FindByEmail(ctx, "jane.doe@x.com").Return(stored, nil)

	_, _, err := svc.Authenticate(ctx, models.ProviderGoogle, models.FederationRequest{Assertion: "token"})
	require.ErrorIs(t, err, ErrProviderMismatch)
	assert.Contains(t, err.Error(), "google")
}

func TestAuthenticate_ImplicitLinkForPasswordlessAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestFederationService(t, ctrl, models.ProviderFacebook)
	ctx := context.Background()

	mocks.verifier.EXPECT().Verify(ctx, "token").Return(models.ExternalIdentity{
		Email: "jane.doe@x.com",
		Name:  "Jane Doe",
	}, nil)

	// google-only account authenticating through facebook with no local
	// password: the second provider gets linked implicitly
	stored := models.Account{ID: "acc-1", Email: "jane.doe@x.com", GoogleLinked: true}
	mocks.repo.EXPECT().FindByEmail(ctx, "jane.doe@x.com").Return(stored, nil)
	mocks.repo.EXPECT().LinkProvider(ctx, "acc-1", models.ProviderFacebook).Return(nil)
	mocks.tokens.EXPECT().Issue(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, account models.Account) (models.Token, error) {
			assert.True(t, account.FacebookLinked)
			assert.True(t, account.GoogleLinked)
			return models.Token{SignedString: "jwt"}, nil
		})

	account, _, err := svc.Authenticate(ctx, models.ProviderFacebook, models.FederationRequest{Assertion: "token"})
	require.NoError(t, err)
	assert.True(t, account.FacebookLinked)
}

func TestAuthenticate_ProvisionsNewAccount(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestFederationService(t, ctrl, models.ProviderGoogle, "jane.doe@x.com")
	ctx := context.Background()

	mocks.verifier.EXPECT().Verify(ctx, "token").Return(models.ExternalIdentity{
		Email:     "Jane.Doe@x.com",
		Name:      "Jane Doe",
		AvatarURL: "https://lh3.googleusercontent.com/a/photo=s96-c",
	}, nil)

	mocks.repo.EXPECT().FindByEmail(ctx, "jane.doe@x.com").
		Return(models.Account{}, store.ErrAccountNotFound)
	mocks.allocator.EXPECT().Allocate(ctx, "jane.doe@x.com").Return("jane.doe", nil)
	mocks.repo.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, account models.Account) (models.Account, error) {
			assert.NotEmpty(t, account.ID)
			assert.Equal(t, "jane.doe@x.com", account.Email)
			assert.Empty(t, account.PasswordHash)
			assert.Equal(t, "jane.doe", account.Username)
			assert.Equal(t, "jane doe", account.Fullname)
			assert.Equal(t, "https://lh3.googleusercontent.com/a/photo=s384-c", account.ProfileImageURL)
			assert.True(t, account.IsAdmin)
			assert.True(t, account.GoogleLinked)
			assert.False(t, account.FacebookLinked)
			return account, nil
		})
	mocks.tokens.EXPECT().Issue(ctx, gomock.Any()).Return(models.Token{SignedString: "jwt"}, nil)

	account, token, err := svc.Authenticate(ctx, models.ProviderGoogle, models.FederationRequest{Assertion: "token"})
	require.NoError(t, err)
	assert.Equal(t, "jane.doe", account.Username)
	assert.Equal(t, "jwt", token.SignedString)
}

func TestAuthenticate_ProvisionWithoutAvatarFallsBack(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestFederationService(t, ctrl, models.ProviderFacebook)
	ctx := context.Background()

	mocks.verifier.EXPECT().Verify(ctx, "token").Return(models.ExternalIdentity{
		Email: "jane.doe@x.com",
		Name:  "Jane Doe",
	}, nil)

	mocks.repo.EXPECT().FindByEmail(ctx, "jane.doe@x.com").
		Return(models.Account{}, store.ErrAccountNotFound)
	mocks.allocator.EXPECT().Allocate(ctx, "jane.doe@x.com").Return("jane.doe", nil)
	mocks.repo.EXPECT().Insert(ctx, gomock.Any()).DoAndReturn(
		func(_ context.Context, account models.Account) (models.Account, error) {
			assert.Equal(t, DefaultAvatarURL("jane doe"), account.ProfileImageURL)
			assert.True(t, account.FacebookLinked)
			assert.False(t, account.GoogleLinked)
			return account, nil
		})
	mocks.tokens.EXPECT().Issue(ctx, gomock.Any()).Return(models.Token{}, nil)

	_, _, err := svc.Authenticate(ctx, models.ProviderFacebook, models.FederationRequest{Assertion: "token"})
	require.NoError(t, err)
}

func TestAuthenticate_StoreFailurePropagates(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, mocks := newTestFederationService(t, ctrl, models.ProviderGoogle)
	ctx := context.Background()

	mocks.verifier.EXPECT().Verify(ctx, "token").Return(models.ExternalIdentity{
		Email: "jane.doe@x.com",
		Name:  "Jane Doe",
	}, nil)

	storeErr := errors.New("connection reset")
	mocks.repo.EXPECT().FindByEmail(ctx, "jane.doe@x.com").Return(models.Account{}, storeErr)

	_, _, err := svc.Authenticate(ctx, models.ProviderGoogle, models.FederationRequest{Assertion: "token"})
	assert.ErrorIs(t, err, storeErr)
}
