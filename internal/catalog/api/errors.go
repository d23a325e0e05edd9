package api

import "github.com/odyssey-erp/productdesk/internal/platform/httpx"

var (
	// ErrProductNotFound is returned when no product has the requested id.
	ErrProductNotFound = httpx.Public(httpx.ErrNotFound, "Produto não encontrado.")
	// ErrSKUTaken is returned when another product already uses the sku.
	ErrSKUTaken = httpx.Public(httpx.ErrDuplicate, "Já existe um produto com este SKU.")
	// ErrDuplicateRequest is returned when an Idempotency-Key was already processed.
	ErrDuplicateRequest = httpx.Public(httpx.ErrDuplicate, "Esta requisição já foi processada.")
	// ErrMissingFields is returned when name, price or sku is absent.
	ErrMissingFields = httpx.Public(httpx.ErrValidation, "Preencha nome, preço e SKU.")
	// ErrNegativePrice is returned for prices below zero.
	ErrNegativePrice = httpx.Public(httpx.ErrValidation, "O preço não pode ser negativo.")
	// ErrMalformedBody is returned when the request body is not a product document.
	ErrMalformedBody = httpx.Public(httpx.ErrValidation, "Corpo da requisição inválido.")
	// ErrInvalidID is returned when the path id is not a positive integer.
	ErrInvalidID = httpx.Public(httpx.ErrValidation, "Identificador de produto inválido.")
)
