//go:build swag

package swaggerkit

import docs "skillproof/internal/services/api/docs"

// docReader returns the swag generated document
var docReader = func() string { return docs.SwaggerInfo.ReadDoc() }
