// Package config loads the YAML model registry that maps call names to
// configured model endpoints. Registry files may reference environment
// variables with ${VAR} syntax; a local .env file is honored via godotenv.
//
// Example registry:
//
//	models:
//	  - call_name: main
//	    name: glm-4.5
//	    api_base: http://localhost:8000/v1
//	    api_key: ${LLM_API_KEY}
//	  - call_name: embedding
//	    name: bge-m3
//	    api_base: http://localhost:8001/v1
//	    api_key: EMPTY
//
// The first entry is the default route.
package config
