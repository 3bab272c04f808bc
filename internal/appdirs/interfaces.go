package appdirs

//go:generate mockgen -source=interfaces.go -destination=../mock/appdirs_resolver_mock.go -package=mock

import "github.com/myeasyserver/myeasyserver/models"

// Resolver computes the directory layout for a deployment.
type Resolver interface {
	Resolve(deployment models.Deployment) (Directories, error)
}
