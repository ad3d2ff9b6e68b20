package petstore

import (
	_ "embed"
	"errors"
	"fmt"
	"strings"

	"github.com/erraggy/oastools/parser"
)

//go:embed petstore.json
var petstoreDocument []byte

// PetstoreDocument returns the bundled Swagger 2.0 description of the Pet resource.
func PetstoreDocument() []byte {
	return append([]byte(nil), petstoreDocument...)
}

// OperationsFromOpenAPI derives a dispatch table from a Swagger 2.0 document.
// Every operation must carry an operationId.
func OperationsFromOpenAPI(data []byte) (OperationSet, error) {
	result, err := parser.ParseWithOptions(
		parser.WithBytes(data),
		parser.WithResolveRefs(false),
	)
	if err != nil {
		return nil, fmt.Errorf("parse openapi document: %w", err)
	}
	if len(result.Errors) > 0 {
		return nil, fmt.Errorf("invalid openapi document: %w", errors.Join(result.Errors...))
	}
	doc, ok := result.OAS2Document()
	if !ok {
		return nil, fmt.Errorf("unsupported openapi version %q: only 2.0 documents are supported", result.Version)
	}

	set := make(OperationSet)
	for path, item := range doc.Paths {
		if item == nil {
			continue
		}
		for method, o := range parser.GetOperations(item, result.OASVersion) {
			if o == nil {
				continue
			}
			op, err := operationFromOAS2(doc, path, strings.ToUpper(method), item.Parameters, o)
			if err != nil {
				return nil, err
			}
			if _, dup := set[op.ID]; dup {
				return nil, fmt.Errorf("duplicate operationId %q", op.ID)
			}
			set[op.ID] = op
		}
	}
	return set, nil
}

func operationFromOAS2(doc *parser.OAS2Document, path, method string, shared []*parser.Parameter, o *parser.Operation) (Operation, error) {
	if o.OperationID == "" {
		return Operation{}, fmt.Errorf("%s %s: missing operationId", method, path)
	}

	op := Operation{
		ID:          o.OperationID,
		Method:      method,
		PathPattern: path,
		Consumes:    firstNonEmpty(o.Consumes, doc.Consumes),
		Produces:    firstNonEmpty(o.Produces, doc.Produces),
	}

	for _, p := range append(append([]*parser.Parameter(nil), shared...), o.Parameters...) {
		if p == nil {
			continue
		}
		spec, err := paramFromOAS2(p)
		if err != nil {
			return Operation{}, fmt.Errorf("operation %s: %w", op.ID, err)
		}
		op.Params = append(op.Params, spec)
	}

	security := o.Security
	if security == nil {
		security = doc.Security
	}
	auth, err := authFromOAS2(doc.SecurityDefinitions, security)
	if err != nil {
		return Operation{}, fmt.Errorf("operation %s: %w", op.ID, err)
	}
	op.Auth = auth
	return op, nil
}

func paramFromOAS2(p *parser.Parameter) (ParamSpec, error) {
	spec := ParamSpec{Name: p.Name, Required: p.Required}
	switch p.In {
	case parser.ParamInPath:
		spec.In = InPath
	case parser.ParamInQuery:
		spec.In = InQuery
		if p.Type == "array" {
			f, err := ParseCollectionFormat(p.CollectionFormat)
			if err != nil {
				return ParamSpec{}, fmt.Errorf("parameter %s: %w", p.Name, err)
			}
			spec.CollectionFormat = f
		}
	case parser.ParamInHeader:
		spec.In = InHeader
	case parser.ParamInBody:
		spec.In = InBody
	case parser.ParamInFormData:
		spec.In = InFormData
		if p.Type == "file" {
			spec.In = InFile
		}
	default:
		return ParamSpec{}, fmt.Errorf("parameter %s: unsupported location %q", p.Name, p.In)
	}
	return spec, nil
}

// authFromOAS2 maps the first usable security requirement to an auth tag.
func authFromOAS2(defs map[string]*parser.SecurityScheme, reqs []parser.SecurityRequirement) (Auth, error) {
	for _, req := range reqs {
		for name := range req {
			scheme, ok := defs[name]
			if !ok || scheme == nil {
				return Auth{}, fmt.Errorf("undefined security scheme %q", name)
			}
			switch scheme.Type {
			case "oauth2":
				return Auth{Scheme: AuthBearer}, nil
			case "apiKey":
				if scheme.In != "header" {
					return Auth{}, fmt.Errorf("api key %q: only header keys are supported", name)
				}
				return Auth{Scheme: AuthAPIKey, Key: name, Header: scheme.Name}, nil
			default:
				return Auth{}, fmt.Errorf("security scheme %q: unsupported type %q", name, scheme.Type)
			}
		}
	}
	return Auth{Scheme: AuthNone}, nil
}

func firstNonEmpty(a, b []string) []string {
	if len(a) > 0 {
		return append([]string(nil), a...)
	}
	if len(b) > 0 {
		return append([]string(nil), b...)
	}
	return nil
}
