// Package docker reads host ports published by running Docker containers.
//
// On Docker Desktop (macOS, Windows) published ports are held by the VM's
// port forwarder and may not appear in the host connection table, so the
// port scanner can add them to its used-port snapshot through
// PublishedPorts. The bind probe still has the final word.
//
// The package uses github.com/docker/docker/client as the underlying
// Docker SDK, with version negotiation enabled for broad compatibility.
package docker
