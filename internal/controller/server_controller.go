package controller

import (
	"context"
	"time"

	"clearance/internal/aws"
	"clearance/internal/cache"
	"clearance/internal/database"
	"clearance/internal/rabbitmq"
)

const healthTimeout = 3 * time.Second

type ServerController interface {
	DBHealth() error
	CacheHealth() error
	RabbitHealth() error
	AWSFileServiceHealth() error
	Online() string
}

type serverController struct {
	db          database.Database
	cache       cache.Cache
	rabbit      rabbitmq.Client
	fileService aws.FileService
}

// NewServer creates the health controller. cache, rabbit and fileService
// are optional and report healthy when nil.
func NewServer(db database.Database, cache cache.Cache, rabbit rabbitmq.Client, fileService aws.FileService) ServerController {
	return &serverController{
		db:          db,
		cache:       cache,
		rabbit:      rabbit,
		fileService: fileService,
	}
}

func (sc *serverController) Online() string {
	return "Online"
}

func (sc *serverController) DBHealth() error {
	return sc.db.Health()
}

func (sc *serverController) CacheHealth() error {
	if sc.cache == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()
	return sc.cache.Ping(ctx)
}

func (sc *serverController) RabbitHealth() error {
	if sc.rabbit == nil {
		return nil
	}
	return sc.rabbit.Health()
}

func (sc *serverController) AWSFileServiceHealth() error {
	if sc.fileService == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), healthTimeout)
	defer cancel()
	return sc.fileService.TestConnection(ctx)
}
