package kairosapi

import (
	"bytes"
	"encoding/json"
	"strings"
)

// LoginRequest is the credential pair posted to /auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginResponse carries the bearer token and the account it belongs to. Depending on
// the account kind the backend names the account "client" or "user".
type LoginResponse struct {
	Token  string   `json:"token"`
	Client *Account `json:"client,omitempty"`
	User   *Account `json:"user,omitempty"`
}

// Account returns whichever account object the backend sent.
func (r LoginResponse) Account() *Account {
	if r.Client != nil {
		return r.Client
	}
	return r.User
}

// Account is the logged-in party. Client accounts use the Spanish field names.
type Account struct {
	MongoID string `json:"_id,omitempty"`
	ID      string `json:"id,omitempty"`
	Nombre  string `json:"nombre,omitempty"`
	Name    string `json:"name,omitempty"`
	Correo  string `json:"correo,omitempty"`
	Email   string `json:"email,omitempty"`
	Role    string `json:"role,omitempty"`
}

func (a Account) Identifier() string {
	return firstNonBlank(a.MongoID, a.ID)
}

func (a Account) DisplayName() string {
	return firstNonBlank(a.Nombre, a.Name)
}

func (a Account) EmailAddress() string {
	return firstNonBlank(a.Correo, a.Email)
}

// NutritionalInfo is the optional per-serving breakdown of a product.
type NutritionalInfo struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Fat      float64 `json:"fat"`
	Carbs    float64 `json:"carbs"`
}

// Product is a catalog entry priced per pound.
type Product struct {
	ID              string           `json:"_id"`
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	Description     string           `json:"description,omitempty"`
	Category        string           `json:"category,omitempty"`
	PricePerPound   float64          `json:"pricePerPound"`
	WholesalePrice  float64          `json:"wholesalePrice"`
	RetailPrice     float64          `json:"retailPrice"`
	OriginCountry   string           `json:"originCountry,omitempty"`
	CurrentStock    float64          `json:"currentStock"`
	MinStock        float64          `json:"minStock"`
	Status          string           `json:"status,omitempty"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo,omitempty"`
	IsActive        *bool            `json:"isActive,omitempty"`
}

// ProductInput is the body of product create and update calls.
type ProductInput struct {
	Code            string           `json:"code"`
	Name            string           `json:"name"`
	Description     string           `json:"description"`
	Category        string           `json:"category"`
	PricePerPound   float64          `json:"pricePerPound"`
	WholesalePrice  float64          `json:"wholesalePrice"`
	RetailPrice     float64          `json:"retailPrice"`
	OriginCountry   string           `json:"originCountry"`
	CurrentStock    float64          `json:"currentStock"`
	MinStock        float64          `json:"minStock"`
	Status          string           `json:"status"`
	ImageURL        string           `json:"imageUrl,omitempty"`
	NutritionalInfo *NutritionalInfo `json:"nutritionalInfo,omitempty"`
}

// Customer is a registered client account.
type Customer struct {
	ID        string `json:"_id"`
	Cedula    string `json:"cedula"`
	Nombre    string `json:"nombre"`
	Correo    string `json:"correo"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	IsActive  *bool  `json:"isActive,omitempty"`
}

// ClientInput is the body of client registration, create and update calls.
type ClientInput struct {
	Cedula    string `json:"cedula"`
	Nombre    string `json:"nombre"`
	Correo    string `json:"correo"`
	Telefono  string `json:"telefono"`
	Direccion string `json:"direccion"`
	Password  string `json:"password,omitempty"`
}

// CreateMixRequest saves a named mix; prices are resolved by the backend.
type CreateMixRequest struct {
	Name        string               `json:"name"`
	Ingredients []MixIngredientInput `json:"ingredients"`
}

type MixIngredientInput struct {
	ProductID   string  `json:"productId"`
	QuantityLbs float64 `json:"quantityLbs"`
}

// Mix is a saved mix as stored by the backend.
type Mix struct {
	ID          string          `json:"_id"`
	Name        string          `json:"name"`
	Ingredients []MixIngredient `json:"ingredients"`
	TotalPrice  *float64        `json:"totalPrice,omitempty"`
	TotalWeight *float64        `json:"totalWeight,omitempty"`
	Client      json.RawMessage `json:"client,omitempty"`
	CreatedAt   string          `json:"createdAt,omitempty"`
}

// MixIngredient keeps every field that may carry the product reference undecoded;
// the stored shape varies between a bare id, a wrapped id and an embedded product.
// Numeric fields stay untyped because older records store them as strings.
type MixIngredient struct {
	Product       json.RawMessage `json:"product,omitempty"`
	ProductID     json.RawMessage `json:"productId,omitempty"`
	ID            json.RawMessage `json:"_id,omitempty"`
	ProductName   string          `json:"productName,omitempty"`
	Name          string          `json:"name,omitempty"`
	PriceAtMoment any             `json:"priceAtMoment,omitempty"`
	PricePerPound any             `json:"pricePerPound,omitempty"`
	QuantityLbs   any             `json:"quantityLbs,omitempty"`
	Quantity      any             `json:"quantity,omitempty"`
}

// CreateOrderRequest submits an order.
type CreateOrderRequest struct {
	Items []OrderLine `json:"items"`
}

// OrderLine references either a product or a saved mix.
type OrderLine struct {
	ProductID string  `json:"productId,omitempty"`
	MixID     string  `json:"mixId,omitempty"`
	Quantity  float64 `json:"quantity"`
	Unit      string  `json:"unit,omitempty"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// Order is a submitted purchase. Total is reported as "total" or "totalPrice".
type Order struct {
	ID         string       `json:"_id"`
	Status     string       `json:"status"`
	Total      *float64     `json:"total,omitempty"`
	TotalPrice *float64     `json:"totalPrice,omitempty"`
	Items      []OrderItem  `json:"items"`
	Client     *OrderClient `json:"client,omitempty"`
	CreatedAt  string       `json:"createdAt,omitempty"`
}

type OrderItem struct {
	Product         *NamedRef `json:"product,omitempty"`
	CustomMix       *NamedRef `json:"customMix,omitempty"`
	Quantity        float64   `json:"quantity"`
	Unit            string    `json:"unit,omitempty"`
	PriceAtPurchase float64   `json:"priceAtPurchase"`
}

// NamedRef is a populated reference or, when the backend did not populate it, a bare id.
type NamedRef struct {
	ID   string `json:"_id,omitempty"`
	Name string `json:"name,omitempty"`
}

func (r *NamedRef) UnmarshalJSON(data []byte) error {
	if id, ok := bareString(data); ok {
		r.ID = id
		return nil
	}
	type plain NamedRef
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*r = NamedRef(decoded)
	return nil
}

// OrderClient is the customer attached to an order, populated or as a bare id.
type OrderClient struct {
	ID     string `json:"_id,omitempty"`
	Nombre string `json:"nombre,omitempty"`
	Correo string `json:"correo,omitempty"`
}

func (c *OrderClient) UnmarshalJSON(data []byte) error {
	if id, ok := bareString(data); ok {
		c.ID = id
		return nil
	}
	type plain OrderClient
	var decoded plain
	if err := json.Unmarshal(data, &decoded); err != nil {
		return err
	}
	*c = OrderClient(decoded)
	return nil
}

func bareString(data []byte) (string, bool) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return "", false
	}
	return s, true
}

// unwrap returns the object under key when the backend wrapped the resource
// (for example {"message": "...", "order": {...}}), otherwise raw itself.
func unwrap(raw json.RawMessage, key string) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return trimmed
	}
	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return trimmed
	}
	for _, candidate := range []string{key, "data"} {
		if inner, ok := envelope[candidate]; ok && len(bytes.TrimSpace(inner)) > 0 && !bytes.Equal(bytes.TrimSpace(inner), []byte("null")) {
			return inner
		}
	}
	return trimmed
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if trimmed := strings.TrimSpace(v); trimmed != "" {
			return trimmed
		}
	}
	return ""
}
