package http

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"strings"
	"sync"

	"marketplace/internal/pkg/errs"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/gorillamux"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

//go:embed openapi.yaml
var openAPIDocument []byte

var loadOpenAPI = sync.OnceValues(func() (*openapi3.T, error) {
	loader := openapi3.NewLoader()
	doc, err := loader.LoadFromData(openAPIDocument)
	if err != nil {
		return nil, fmt.Errorf("load openapi document: %w", err)
	}
	if err := doc.Validate(context.Background()); err != nil {
		return nil, fmt.Errorf("validate openapi document: %w", err)
	}
	return doc, nil
})

// OpenAPI returns the parsed description of the API. The document is embedded,
// so an error here means the build shipped a broken file.
func OpenAPI() (*openapi3.T, error) {
	return loadOpenAPI()
}

var registerDocOnce sync.Once

// registerDoc publishes the document to swag's registry, where echo-swagger reads
// it for /swagger/doc.json.
func registerDoc(doc *openapi3.T) error {
	data, err := doc.MarshalJSON()
	if err != nil {
		return fmt.Errorf("encode openapi document: %w", err)
	}
	registerDocOnce.Do(func() {
		swag.Register(swag.Name, &swag.Spec{
			InfoInstanceName: swag.Name,
			SwaggerTemplate:  string(data),
			// the document holds no template actions
			LeftDelim:  "[[swag",
			RightDelim: "swag]]",
		})
	})
	return nil
}

// OpenAPIValidator rejects requests whose path parameters, query or body do not
// match the types the document declares. Routes the document does not know fall
// through to echo. Authentication is left to the JWT middleware.
func OpenAPIValidator(doc *openapi3.T) (echo.MiddlewareFunc, error) {
	router, err := gorillamux.NewRouter(doc)
	if err != nil {
		return nil, fmt.Errorf("build openapi router: %w", err)
	}
	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			route, pathParams, err := router.FindRoute(req)
			if err != nil {
				if errors.Is(err, routers.ErrPathNotFound) || errors.Is(err, routers.ErrMethodNotAllowed) {
					return next(c)
				}
				return err
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return documentViolation(err)
			}
			return next(c)
		}
	}, nil
}

// documentViolation names the offending parameter or body property: "radiusKm",
// "pickup.latitude", or "body" when the body could not be decoded at all.
func documentViolation(err error) error {
	var requestErr *openapi3filter.RequestError
	if !errors.As(err, &requestErr) {
		return errs.NewValidationError(errs.NewValueIsInvalidErrorWithCause("body", err))
	}

	param := "body"
	if requestErr.Parameter != nil {
		param = requestErr.Parameter.Name
	} else {
		var schemaErr *openapi3.SchemaError
		if errors.As(err, &schemaErr) {
			if pointer := schemaErr.JSONPointer(); len(pointer) > 0 {
				param = strings.Join(pointer, ".")
			}
		}
	}
	return errs.NewValidationError(errs.NewValueIsInvalidErrorWithCause(param, requestErr))
}
