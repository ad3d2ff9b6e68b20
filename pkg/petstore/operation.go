package petstore

import (
	"fmt"
	"net/http"
	"sort"
)

// Location says where a parameter is placed in the outgoing request.
type Location string

const (
	InPath     Location = "path"
	InQuery    Location = "query"
	InHeader   Location = "header"
	InBody     Location = "body"
	InFormData Location = "formData"
	InFile     Location = "file"
)

// AuthScheme is the credential an operation requires.
type AuthScheme int

const (
	AuthNone AuthScheme = iota
	AuthBearer
	AuthAPIKey
)

func (s AuthScheme) String() string {
	switch s {
	case AuthBearer:
		return "bearer"
	case AuthAPIKey:
		return "apiKey"
	default:
		return "none"
	}
}

// Auth is the per-operation capability tag. Key names the API key entry in
// Configuration.APIKeys and Header is the header it is sent in.
type Auth struct {
	Scheme AuthScheme
	Key    string
	Header string
}

// ParamSpec binds one named argument to its request location.
type ParamSpec struct {
	Name             string
	In               Location
	Required         bool
	CollectionFormat CollectionFormat
}

// Operation is one row of the dispatch table.
type Operation struct {
	ID          string
	Method      string
	PathPattern string
	Auth        Auth
	Consumes    []string
	Produces    []string
	Params      []ParamSpec
}

const (
	MediaJSON      = "application/json"
	MediaXML       = "application/xml"
	MediaForm      = "application/x-www-form-urlencoded"
	MediaMultipart = "multipart/form-data"

	// formContentType is what urlencoded bodies are sent with.
	formContentType = MediaForm + ";charset=UTF-8"
)

const (
	OpAddPet            = "addPet"
	OpDeletePet         = "deletePet"
	OpFindPetsByStatus  = "findPetsByStatus"
	OpFindPetsByTags    = "findPetsByTags"
	OpGetPetByID        = "getPetById"
	OpUpdatePet         = "updatePet"
	OpUpdatePetWithForm = "updatePetWithForm"
	OpUploadFile        = "uploadFile"
)

var (
	bearerAuth = Auth{Scheme: AuthBearer}
	apiKeyAuth = Auth{Scheme: AuthAPIKey, Key: "api_key", Header: "api_key"}
)

var petOperations = []Operation{
	{
		ID: OpAddPet, Method: http.MethodPost, PathPattern: "/pet", Auth: bearerAuth,
		Consumes: []string{MediaJSON}, Produces: []string{MediaJSON},
		Params: []ParamSpec{{Name: "pet", In: InBody, Required: true}},
	},
	{
		ID: OpDeletePet, Method: http.MethodDelete, PathPattern: "/pet/{petId}", Auth: bearerAuth,
		Produces: []string{MediaJSON},
		Params: []ParamSpec{
			{Name: "petId", In: InPath, Required: true},
			{Name: "api_key", In: InHeader},
		},
	},
	{
		ID: OpFindPetsByStatus, Method: http.MethodGet, PathPattern: "/pet/findByStatus", Auth: bearerAuth,
		Produces: []string{MediaXML},
		Params:   []ParamSpec{{Name: "status", In: InQuery, Required: true, CollectionFormat: CollectionCSV}},
	},
	{
		ID: OpFindPetsByTags, Method: http.MethodGet, PathPattern: "/pet/findByTags", Auth: bearerAuth,
		Produces: []string{MediaXML},
		Params:   []ParamSpec{{Name: "tags", In: InQuery, Required: true, CollectionFormat: CollectionCSV}},
	},
	{
		ID: OpGetPetByID, Method: http.MethodGet, PathPattern: "/pet/{petId}", Auth: apiKeyAuth,
		Produces: []string{MediaXML},
		Params:   []ParamSpec{{Name: "petId", In: InPath, Required: true}},
	},
	{
		ID: OpUpdatePet, Method: http.MethodPut, PathPattern: "/pet", Auth: bearerAuth,
		Consumes: []string{MediaJSON}, Produces: []string{MediaJSON},
		Params: []ParamSpec{{Name: "pet", In: InBody, Required: true}},
	},
	{
		ID: OpUpdatePetWithForm, Method: http.MethodPost, PathPattern: "/pet/{petId}", Auth: bearerAuth,
		Consumes: []string{MediaForm}, Produces: []string{MediaJSON},
		Params: []ParamSpec{
			{Name: "petId", In: InPath, Required: true},
			{Name: "name", In: InFormData},
			{Name: "status", In: InFormData},
		},
	},
	{
		ID: OpUploadFile, Method: http.MethodPost, PathPattern: "/pet/{petId}/uploadImage", Auth: bearerAuth,
		Consumes: []string{MediaMultipart}, Produces: []string{MediaJSON},
		Params: []ParamSpec{
			{Name: "petId", In: InPath, Required: true},
			{Name: "additionalMetadata", In: InFormData},
			{Name: "file", In: InFile},
		},
	},
}

// OperationSet indexes operations by id.
type OperationSet map[string]Operation

// PetOperations returns a fresh copy of the built-in Pet dispatch table.
func PetOperations() OperationSet {
	set := make(OperationSet, len(petOperations))
	for _, op := range petOperations {
		set[op.ID] = op.clone()
	}
	return set
}

// Lookup returns the operation with the given id.
func (s OperationSet) Lookup(id string) (Operation, error) {
	op, ok := s[id]
	if !ok {
		return Operation{}, fmt.Errorf("%w: %s", ErrUnknownOperation, id)
	}
	return op, nil
}

// IDs lists the operation ids in sorted order.
func (s OperationSet) IDs() []string {
	ids := make([]string, 0, len(s))
	for id := range s {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

func (o Operation) clone() Operation {
	o.Consumes = append([]string(nil), o.Consumes...)
	o.Produces = append([]string(nil), o.Produces...)
	o.Params = append([]ParamSpec(nil), o.Params...)
	return o
}

func (o Operation) paramsIn(loc Location) []ParamSpec {
	var out []ParamSpec
	for _, p := range o.Params {
		if p.In == loc {
			out = append(out, p)
		}
	}
	return out
}
