package cmd

import (
	"context"
	"fmt"
	"strings"

	"medconnect/config"
	"medconnect/database"
	doctorRepo "medconnect/database/repository/doctor"
	"medconnect/services/doctor"
	"medconnect/services/identity"
	"medconnect/services/tasks"
	"medconnect/utils"

	"github.com/hibiken/asynq"
)

// app holds the collaborators shared by both commands.
type app struct {
	repo    *doctorRepo.MongoDoctorRepo
	service *doctor.DefaultDoctorService
	queue   *asynq.Client
}

func newApp() (*app, error) {
	database.InitDB()
	repo, err := doctorRepo.NewMongoDoctorRepo(database.Database())
	if err != nil {
		return nil, err
	}

	queue := asynq.NewClient(utils.QueueRedisOpt())
	cache := utils.GetCacheClient()
	svc, err := doctor.NewDefaultDoctorService(
		repo,
		&doctor.RedisAvailabilityViews{Client: cache},
		&doctor.RedisDraftStore{Client: cache},
		&tasks.AsynqQueue{Client: queue},
		config.AppConfig.TokenTTL,
	)
	if err != nil {
		return nil, err
	}
	svc.Tokens = &identity.RedisTokenCache{Client: utils.GetAuthCacheClient()}

	return &app{repo: repo, service: svc, queue: queue}, nil
}

// resolver picks the identity provider named by AUTH_PROVIDER.
func (a *app) resolver(ctx context.Context) (identity.Resolver, error) {
	switch strings.ToLower(config.AppConfig.AuthProvider) {
	case "", "local":
		return &identity.JWTResolver{
			Doctors: a.repo,
			Cache:   &identity.RedisTokenCache{Client: utils.GetAuthCacheClient()},
		}, nil
	case "firebase":
		return identity.NewFirebaseResolver(ctx, config.AppConfig.FirebaseCredentialsFile, a.repo)
	default:
		return nil, fmt.Errorf("unknown AUTH_PROVIDER %q", config.AppConfig.AuthProvider)
	}
}

func (a *app) close(ctx context.Context) {
	logger := utils.GetLogger()
	if err := a.queue.Close(); err != nil {
		logger.Sugar().Errorf("failed to close task queue client: %v", err)
	}
	if err := database.Disconnect(ctx); err != nil {
		logger.Sugar().Errorf("failed to disconnect MongoDB: %v", err)
	}
}
