package natswire

import (
	"fmt"
	"slices"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Info is the server handshake/advertisement, sent as a JSON document
// embedded on the line:
//
//	INFO {"option_name":option_value,...}\r\n
type Info struct {
	ServerID     string   `json:"server_id"`
	Version      string   `json:"version"`
	Proto        *int     `json:"proto,omitempty"`
	Go           string   `json:"go"`
	Host         string   `json:"host"`
	Port         int      `json:"port"`
	Headers      bool     `json:"headers,omitempty"`
	AuthRequired bool     `json:"auth_required"`
	TLSRequired  bool     `json:"tls_required"`
	MaxPayload   int64    `json:"max_payload"`
	ClientID     *uint64  `json:"client_id,omitempty"`
	ConnectURLs  []string `json:"connect_urls,omitempty"`
	Nonce        *string  `json:"nonce,omitempty"`
}

// Kind returns KindInfo.
func (m *Info) Kind() Kind { return KindInfo }

// Equal reports whether o is an Info with the same fields.
func (m *Info) Equal(o Message) bool {
	i, ok := o.(*Info)
	return ok && m.ServerID == i.ServerID && m.Version == i.Version &&
		eqInt(m.Proto, i.Proto) &&
		m.Go == i.Go && m.Host == i.Host && m.Port == i.Port &&
		m.Headers == i.Headers &&
		m.AuthRequired == i.AuthRequired && m.TLSRequired == i.TLSRequired &&
		m.MaxPayload == i.MaxPayload &&
		eqUint64Ptr(m.ClientID, i.ClientID) &&
		slices.Equal(m.ConnectURLs, i.ConnectURLs) &&
		eqString(m.Nonce, i.Nonce)
}

// Connect is the client handshake, sent as a JSON document embedded on the
// line:
//
//	CONNECT {"option_name":option_value,...}\r\n
type Connect struct {
	Verbose     bool    `json:"verbose"`
	Pedantic    bool    `json:"pedantic"`
	TLSRequired bool    `json:"tls_required"`
	AuthToken   *string `json:"auth_token,omitempty"`
	User        *string `json:"user,omitempty"`
	Pass        *string `json:"pass,omitempty"`
	Lang        string  `json:"lang"`
	Name        string  `json:"name"`
	Version     string  `json:"version"`
	Protocol    *int    `json:"protocol,omitempty"`
	Echo        bool    `json:"echo,omitempty"`
	Sig         *string `json:"sig,omitempty"`
	JWT         *string `json:"jwt,omitempty"`
}

// Kind returns KindConnect.
func (m *Connect) Kind() Kind { return KindConnect }

// Equal reports whether o is a Connect with the same fields.
func (m *Connect) Equal(o Message) bool {
	c, ok := o.(*Connect)
	return ok && m.Verbose == c.Verbose && m.Pedantic == c.Pedantic &&
		m.TLSRequired == c.TLSRequired &&
		eqString(m.AuthToken, c.AuthToken) &&
		eqString(m.User, c.User) &&
		eqString(m.Pass, c.Pass) &&
		m.Lang == c.Lang && m.Name == c.Name && m.Version == c.Version &&
		eqInt(m.Protocol, c.Protocol) &&
		m.Echo == c.Echo &&
		eqString(m.Sig, c.Sig) &&
		eqString(m.JWT, c.JWT)
}

// unmarshalDoc decodes the JSON document that spans the remainder of an INFO
// or CONNECT line.
func unmarshalDoc(doc []byte, v any) error {
	if len(doc) == 0 {
		return fmt.Errorf("%w: missing document", ErrMalformedPayload)
	}
	if err := json.Unmarshal(doc, v); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedPayload, err)
	}
	return nil
}

func eqUint64Ptr(a, b *uint64) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
