package domain

import (
	interfaces "signin/internal/domain/interfaces"
	types "signin/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Credentials = types.Credentials
	AuthToken   = types.AuthToken
	Failure     = types.Failure
	FailureKind = types.FailureKind
	Lifecycle   = types.Lifecycle
	FlowState   = types.FlowState
	SessionInfo = types.SessionInfo
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	CredentialStore = interfaces.CredentialStore
	AuthGateway     = interfaces.AuthGateway
	LoginService    = interfaces.LoginService
	SessionService  = interfaces.SessionService
)

const AccessTokenKey = types.AccessTokenKey

const (
	ValidationFailure = types.Validation
	NetworkFailure    = types.Network
	ServerFailure     = types.Server
	StorageFailure    = types.Storage
)

const (
	LifecycleEmpty   = types.LifecycleEmpty
	LifecycleLoading = types.LifecycleLoading
	LifecycleLoaded  = types.LifecycleLoaded
	LifecycleError   = types.LifecycleError
)

// Failure constructors, re-exported.
var (
	NewValidationFailure = types.NewValidationFailure
	NewNetworkFailure    = types.NewNetworkFailure
	NewServerFailure     = types.NewServerFailure
	NewStorageFailure    = types.NewStorageFailure
	AsFailure            = types.AsFailure
)
