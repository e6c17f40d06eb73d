// Package config provides configuration loading for raptor.
//
// The configuration is stored in raptor.yaml. Every key may be overridden
// with a RAPTOR_ environment variable, where a double underscore separates
// the section from the key:
//
//	render:
//	  pretty: true
//	server:
//	  addr: localhost:3000
//	  docs_dir: docs
//	  watch: true
//	  read_timeout: 10s
//	publish:
//	  bucket: my-site
//	  prefix: pages
//	log:
//	  level: debug
//
//	RAPTOR_SERVER__DOCS_DIR=site RAPTOR_LOG__LEVEL=warn raptor serve
//
// # Usage
//
//	cfg, err := config.Load(".", nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	fmt.Println("Addr:", cfg.Server.Addr)
package config
