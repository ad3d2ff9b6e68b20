// Package petstore is a typed client for the Petstore Pet resource.
//
// Every endpoint is described once in a declarative operation table
// (method, path template, auth requirement, parameter bindings and media
// types). A single execution routine validates required parameters, builds the
// URL, headers and body for the operation and hands the request to an
// httpclient.Client transport. Typed methods on PetService are thin wrappers
// around that routine:
//
//	svc := petstore.NewPetService(httpclient.NewRestyClient(10*time.Second), petstore.Configuration{
//		AccessToken: petstore.StaticToken("secret"),
//		APIKeys:     map[string]string{"api_key": "special-key"},
//	})
//	pets, err := svc.FindPetsByStatus(ctx, []domain.PetStatus{domain.PetStatusAvailable})
//
// Each call has a body form (X) returning the decoded payload and a response
// form (XWithResponse) returning the full envelope. Invoke offers the same
// choice as a runtime flag for dynamic dispatch by operation id.
package petstore
