package main

import (
	"net"
	"net/http"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"

	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/config"
	"github.com/inlove0810-svg/DuAnTaoDeKiemTraTieuHoc/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debugf("no .env loaded: %s", err)
	}
	if err := config.Err(); err != nil {
		log.Fatalf("invalid configuration: %s", err)
	}
	backend, err := router.NewBackend(config.ReadConfig())
	if err != nil {
		log.Fatalln(err)
	}
	r := router.New(config.ReadConfig(), backend)

	l, err := net.Listen("tcp", config.ReadConfig().ListenAddr)
	if err != nil {
		log.Fatalln(err)
	}
	log.Infof("Server listening at %s", l.Addr())
	if err = http.Serve(l, r); err != nil {
		log.Fatalln(err)
	}
}
