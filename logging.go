package nexus

import (
	"context"

	"go.uber.org/zap"
)

func LoggingMiddleware(log *zap.Logger) ServiceMiddleware {
	log = log.With(
		zap.String("service", "chat"),
	)

	return func(next Service) Service {
		log.Info("service initialized")

		return &loggingMiddleware{
			log:  log,
			next: next,
		}
	}
}

type loggingMiddleware struct {
	log  *zap.Logger
	next Service
}

func (mw *loggingMiddleware) Close() error {
	log := mw.log.With(
		zap.String("action", "close"),
	)

	err := mw.next.Close()
	if err != nil {
		log.Error(err.Error())
		return err
	}

	log.Info("service closed")
	return nil
}

func (mw *loggingMiddleware) RetrieveContext(ctx context.Context, query string, k ...int) (string, error) {
	log := mw.log.With(
		zap.String("action", "retrieve_context"),
	)

	context, err := mw.next.RetrieveContext(ctx, query, k...)
	if err != nil {
		log.Error(err.Error())
		return "", err
	}

	log.Info("context retrieved", zap.Int("length", len(context)))
	return context, nil
}

func (mw *loggingMiddleware) Answer(ctx context.Context, query string) (string, error) {
	log := mw.log.With(
		zap.String("action", "answer"),
	)

	answer, err := mw.next.Answer(ctx, query)
	if err != nil {
		log.Error(err.Error())
		return "", err
	}

	log.Info("chat turn answered", zap.Int("length", len(answer)))
	return answer, nil
}
