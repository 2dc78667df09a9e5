package main

import (
	"github.com/aws/aws-lambda-go/lambda"
	chiadapter "github.com/awslabs/aws-lambda-go-api-proxy/chi"

	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/config"
	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/router"
)

// Lambda entrypoint behind an API Gateway REST proxy integration.
func main() {
	config.Init()
	adapter := chiadapter.New(router.FromConfig())
	lambda.Start(adapter.ProxyWithContext)
}
