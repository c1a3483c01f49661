package main

import (
	"flag"
	"fmt"
	"log"
	"net"
	"os"
	"os/signal"

	"uk.ac.bris.cs/torusgol/remote"
)

func main() {
	port := flag.Int("port", 9181, "Port to listen on.")
	dir := flag.String("dir", "configs", "Directory of configuration files to serve.")
	flag.Parse()

	if info, err := os.Stat(*dir); err != nil || !info.IsDir() {
		log.Fatalf("%s is not a directory", *dir)
	}
	listener, err := net.Listen("tcp", fmt.Sprintf(":%d", *port))
	if err != nil {
		log.Fatal(err)
	}

	server := &remote.Server{Dir: *dir}
	go func() {
		interrupt := make(chan os.Signal, 1)
		signal.Notify(interrupt, os.Interrupt)
		<-interrupt
		log.Print("Shutting down")
		server.Close()
	}()
	if err := server.Serve(listener); err != nil {
		log.Fatal(err)
	}
}
