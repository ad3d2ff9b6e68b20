package petstore

import (
	"bytes"
	"encoding/json"
	"encoding/xml"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"net/url"
	"reflect"
	"strconv"
	"strings"
)

// Args carries the named arguments of one call. Keys match ParamSpec.Name.
type Args map[string]any

// FileData is a file part for multipart uploads.
type FileData struct {
	Name        string
	Content     []byte
	ContentType string
}

// request is the fully built outgoing call, ready for the transport.
type request struct {
	method  string
	url     string
	headers map[string]string
	body    []byte
}

func validateRequired(op Operation, args Args) error {
	for _, p := range op.Params {
		if !p.Required {
			continue
		}
		v, ok := args[p.Name]
		if !ok || isMissing(v) {
			return &RequiredParameterError{Operation: op.ID, Parameter: p.Name}
		}
	}
	return nil
}

// isMissing reports whether a required argument counts as not supplied:
// nil, a nil pointer/slice/map, an empty string or a numeric zero.
func isMissing(v any) bool {
	if isNil(v) {
		return true
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.Len() == 0
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64,
		reflect.Float32, reflect.Float64:
		return rv.IsZero()
	}
	return false
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Pointer, reflect.Slice, reflect.Map, reflect.Interface, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// formatValue renders a scalar argument as text.
func formatValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case fmt.Stringer:
		return t.String()
	}
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer {
		if rv.IsNil() {
			return ""
		}
		rv = rv.Elem()
	}
	switch rv.Kind() {
	case reflect.String:
		return rv.String()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(rv.Int(), 10)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(rv.Uint(), 10)
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(rv.Float(), 'f', -1, 64)
	case reflect.Bool:
		return strconv.FormatBool(rv.Bool())
	}
	return fmt.Sprint(rv.Interface())
}

// toStrings flattens a slice or array argument; scalars become a single element.
func toStrings(v any) []string {
	rv := reflect.ValueOf(v)
	for rv.Kind() == reflect.Pointer && !rv.IsNil() {
		rv = rv.Elem()
	}
	if rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array {
		return []string{formatValue(v)}
	}
	out := make([]string, 0, rv.Len())
	for i := 0; i < rv.Len(); i++ {
		out = append(out, formatValue(rv.Index(i).Interface()))
	}
	return out
}

func buildURL(basePath string, op Operation, args Args) string {
	path := op.PathPattern
	for _, p := range op.paramsIn(InPath) {
		path = strings.ReplaceAll(path, "{"+p.Name+"}", encodeComponent(formatValue(args[p.Name])))
	}

	var pairs []string
	for _, p := range op.paramsIn(InQuery) {
		v, ok := args[p.Name]
		if !ok || isNil(v) {
			continue
		}
		format := p.CollectionFormat
		if format == "" {
			format = CollectionCSV
		}
		pairs = append(pairs, encodeCollection(p.Name, toStrings(v), format)...)
	}

	u := basePath + path
	if len(pairs) > 0 {
		u += "?" + strings.Join(pairs, "&")
	}
	return u
}

func buildHeaders(cfg Configuration, op Operation, args Args, extra map[string]string) map[string]string {
	headers := make(map[string]string, len(extra)+4)
	for k, v := range extra {
		headers[k] = v
	}

	for _, p := range op.paramsIn(InHeader) {
		v, ok := args[p.Name]
		if !ok || isNil(v) {
			continue
		}
		if s := formatValue(v); s != "" {
			headers[p.Name] = s
		}
	}

	switch op.Auth.Scheme {
	case AuthBearer:
		if tok, ok := cfg.token(); ok {
			headers["Authorization"] = "Bearer " + tok
		}
	case AuthAPIKey:
		if key, ok := cfg.apiKey(op.Auth.Key); ok {
			name := op.Auth.Header
			if name == "" {
				name = op.Auth.Key
			}
			headers[name] = key
		}
	}

	if len(op.Produces) > 0 {
		headers["Accept"] = strings.Join(op.Produces, ", ")
	}
	return headers
}

// encodeBody builds the request payload and its content type. It returns a nil
// body for operations without a body, form or file parameter.
func encodeBody(op Operation, args Args) ([]byte, string, error) {
	consumes := MediaJSON
	if len(op.Consumes) > 0 {
		consumes = op.Consumes[0]
	}

	if bodyParams := op.paramsIn(InBody); len(bodyParams) > 0 {
		v, ok := args[bodyParams[0].Name]
		if !ok || isNil(v) {
			return nil, "", nil
		}
		if strings.Contains(consumes, "xml") {
			b, err := xml.Marshal(v)
			if err != nil {
				return nil, "", fmt.Errorf("encode %s body: %w", op.ID, err)
			}
			return b, consumes, nil
		}
		b, err := json.Marshal(v)
		if err != nil {
			return nil, "", fmt.Errorf("encode %s body: %w", op.ID, err)
		}
		return b, consumes, nil
	}

	formParams := op.paramsIn(InFormData)
	fileParams := op.paramsIn(InFile)
	if len(formParams) == 0 && len(fileParams) == 0 {
		return nil, "", nil
	}
	if consumes == MediaMultipart || len(fileParams) > 0 {
		return encodeMultipart(op, args, formParams, fileParams)
	}

	form := url.Values{}
	for _, p := range formParams {
		v, ok := args[p.Name]
		if !ok || isNil(v) {
			continue
		}
		form.Set(p.Name, formatValue(v))
	}
	return []byte(form.Encode()), formContentType, nil
}

func encodeMultipart(op Operation, args Args, formParams, fileParams []ParamSpec) ([]byte, string, error) {
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)

	for _, p := range formParams {
		v, ok := args[p.Name]
		if !ok || isNil(v) {
			continue
		}
		if err := mw.WriteField(p.Name, formatValue(v)); err != nil {
			return nil, "", fmt.Errorf("encode %s form field %s: %w", op.ID, p.Name, err)
		}
	}

	for _, p := range fileParams {
		f, ok := fileArg(args[p.Name])
		if !ok {
			continue
		}
		name := f.Name
		if name == "" {
			name = p.Name
		}
		ct := f.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`, p.Name, name))
		h.Set("Content-Type", ct)
		part, err := mw.CreatePart(h)
		if err != nil {
			return nil, "", fmt.Errorf("encode %s file %s: %w", op.ID, p.Name, err)
		}
		if _, err := part.Write(f.Content); err != nil {
			return nil, "", fmt.Errorf("encode %s file %s: %w", op.ID, p.Name, err)
		}
	}

	if err := mw.Close(); err != nil {
		return nil, "", fmt.Errorf("encode %s multipart body: %w", op.ID, err)
	}
	return buf.Bytes(), mw.FormDataContentType(), nil
}

func fileArg(v any) (FileData, bool) {
	switch f := v.(type) {
	case FileData:
		return f, true
	case *FileData:
		if f != nil {
			return *f, true
		}
	case []byte:
		if f != nil {
			return FileData{Content: f}, true
		}
	}
	return FileData{}, false
}

func buildRequest(cfg Configuration, op Operation, args Args, extra map[string]string) (request, error) {
	if err := validateRequired(op, args); err != nil {
		return request{}, err
	}

	body, contentType, err := encodeBody(op, args)
	if err != nil {
		return request{}, err
	}
	headers := buildHeaders(cfg, op, args, extra)
	if contentType != "" {
		headers["Content-Type"] = contentType
	}

	return request{
		method:  op.Method,
		url:     buildURL(cfg.BasePath, op, args),
		headers: headers,
		body:    body,
	}, nil
}
