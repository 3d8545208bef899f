package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/fulldump/box"
	"github.com/fulldump/goconfig"

	"github.com/shelfdb/shelf/api"
	"github.com/shelfdb/shelf/configuration"
	"github.com/shelfdb/shelf/service"
	"github.com/shelfdb/shelf/store"
)

var VERSION = "dev"

var banner = `
     _          _  __
 ___| |__   ___| |/ _|
/ __| '_ \ / _ \ | |_
\__ \ | | |  __/ |  _|
|___/_| |_|\___|_|_|    version ` + VERSION + `
`

func main() {

	c := configuration.Default()
	goconfig.Read(&c)

	if c.Version {
		fmt.Println("Version:", VERSION)
		return
	}

	if c.ShowBanner {
		fmt.Println(banner)
	}

	if c.ShowConfig {
		e := json.NewEncoder(os.Stdout)
		e.SetIndent("", "    ")
		e.Encode(c)
	}

	resources, err := service.ParseResources(c.Resources)
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(-1)
	}

	var st store.Storage
	switch c.Store {
	case "memory":
		st = store.NewMemory()
	case "sqlite":
		st, err = store.OpenSqlite(c.Sqlite)
		if err != nil {
			log.Println("ERROR:", err.Error())
			os.Exit(-1)
		}
	default:
		log.Println("ERROR: unknown store:", c.Store)
		os.Exit(-1)
	}

	b := api.Build(service.NewService(st, resources...), c.Statics)
	if c.EnableCompression {
		b.WithInterceptors(api.Compression)
	}
	b.WithInterceptors(
		api.AccessLog(log.New(os.Stdout, "ACCESS: ", log.Lshortfile)),
		api.RecoverFromPanic,
		api.PrettyErrorInterceptor,
	)

	s := &http.Server{
		Addr:    c.HttpAddr,
		Handler: box.Box2Http(b),
	}

	ln, err := net.Listen("tcp", c.HttpAddr)
	if err != nil {
		log.Println("ERROR:", err.Error())
		os.Exit(-1)
	}
	log.Println("listening on", c.HttpAddr)

	signalChan := make(chan os.Signal, 1)
	signal.Notify(signalChan, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		sig := <-signalChan
		fmt.Println("Signal received", sig.String())
		s.Shutdown(context.Background())
	}()

	err = s.Serve(ln)
	if err != nil && err != http.ErrServerClosed {
		fmt.Println(err.Error())
	}

	if err := st.Close(); err != nil {
		fmt.Println("ERROR: close store:", err.Error())
	}
}
