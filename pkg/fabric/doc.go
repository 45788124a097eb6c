// Package fabric provides types, interfaces, and helpers for working with
// the Microsoft Fabric REST API.
//
// # Overview
//
// The fabric package defines the domain types (Workspace, Item,
// GitStatusResponse, OperationState) and the interfaces for resource-oriented
// clients (WorkspacesClient, ItemsClient, GitClient, OperationsClient). A
// concrete implementation is provided by the fabricclient package, which
// wires configuration, transport, and authentication. Most consumers should
// import fabricclient to construct a client and then interact with the
// resource client interfaces exposed here.
//
// Getting a client
//
//	import (
//	  "context"
//	  "log"
//
//	  "github.com/tidemark-io/fabric-client/pkg/fabric"
//	  "github.com/tidemark-io/fabric-client/pkg/fabricclient"
//	)
//
//	func example() {
//	  ctx := context.Background()
//	  cli, err := fabricclient.New(ctx, &fabric.Config{
//	    TenantID:     "my-tenant",
//	    ClientID:     "app-id",
//	    ClientSecret: "secret",
//	  })
//	  if err != nil { log.Fatal(err) }
//
//	  workspaces, err := cli.Workspaces().List(ctx, nil).All()
//	  if err != nil { log.Fatal(err) }
//	  _ = workspaces
//	}
//
// # Pagination
//
// List endpoints return an ItemIterator that fetches pages lazily and
// flattens each page's value array. Iterators are finite, not restartable,
// and safe to abandon early. Use Next for streaming consumption, or All and
// ForEach to drain.
//
// # Long-running operations
//
// Calls backed by the Fabric long-running-operation protocol (item
// definition export, git status) block until the server reports a terminal
// status, honoring the server's Retry-After cadence and the caller's
// context. A failed operation surfaces its server-provided error payload as
// an *OperationFailedError.
package fabric
