package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/adibtatriantama/FCC-Book-Trading/infrastructure/config"
	"github.com/adibtatriantama/FCC-Book-Trading/infrastructure/di"
	"github.com/adibtatriantama/FCC-Book-Trading/interfaces/http/rest"
)

var (
	chiLambda *chiadapter.ChiLambdaV2
	container *di.Container
)

// init runs during cold start.
func init() {
	ctx := context.Background()

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	container, err = di.InitializeContainer(ctx, cfg)
	if err != nil {
		log.Fatalf("Failed to initialize container: %v", err)
	}

	router := rest.NewRouter(
		container.UserService,
		container.BookService,
		container.TradeService,
		container.JWTValidator,
		cfg.EnableCORS,
		container.Logger,
	)
	handler := router.Setup()

	chiRouter, ok := handler.(*chi.Mux)
	if !ok {
		log.Fatal("Failed to cast handler to chi.Mux")
	}
	chiLambda = chiadapter.NewV2(chiRouter)
}

// Handler is the Lambda function handler. The API Gateway JWT authorizer
// has already validated the token; its claims are forwarded to the router
// as trusted headers so the auth middleware can skip re-validation.
func Handler(ctx context.Context, req events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	if req.Headers == nil {
		req.Headers = make(map[string]string)
	}

	if req.RequestContext.Authorizer != nil && req.RequestContext.Authorizer.JWT != nil {
		claims := req.RequestContext.Authorizer.JWT.Claims
		if sub := claims["sub"]; sub != "" {
			req.Headers["X-API-Gateway-Authorized"] = "true"
			req.Headers["X-User-ID"] = sub
			req.Headers["X-User-Email"] = claims["email"]
			req.Headers["X-User-Nickname"] = claims["nickname"]
		} else {
			container.Logger.Warn("Authorizer context missing subject claim",
				zap.String("path", req.RequestContext.HTTP.Path),
			)
		}
	}

	return chiLambda.ProxyWithContextV2(ctx, req)
}

func main() {
	lambda.Start(Handler)
}
