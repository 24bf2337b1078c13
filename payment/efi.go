// efi.go - Efí PIX charge client
// This file wraps the Efí PIX API used for order payments:
// 1. OAuth client-credentials token over mTLS
// 2. Immediate charge creation (POST /v2/cob)
// 3. QR code generation for the charge location
//
// Callers only ever see ErrGatewayUnavailable on failure; provider
// detail is logged here and never leaks to the HTTP response.

package payment

import (
	"crypto/tls"
	"errors"
	"fmt"
	"log"
	"time"

	"go-store-backend/config"

	"github.com/go-resty/resty/v2"
)

// Charge is the result of creating a PIX charge with the provider.
type Charge struct {
	Txid          string // Provider transaction id (idempotency key for webhooks)
	CopyPasteCode string // "PIX copia e cola" payable string
	QRCodeImage   string // Data URL with the QR image
}

// Gateway creates PIX charges. The default implementation talks to
// Efí; tests install a fake through the Client variable.
type Gateway interface {
	CreatePixCharge(total float64, expirationSeconds int) (*Charge, error)
}

// Client is the process-wide payment gateway, set by Connect.
var Client Gateway

// ErrGatewayUnavailable is the only error surfaced to callers.
var ErrGatewayUnavailable = errors.New("payment communication failed")

const (
	sandboxBaseURL    = "https://pix-h.api.efipay.com.br"
	productionBaseURL = "https://pix.api.efipay.com.br"
)

// EfiClient implements Gateway against the Efí PIX API.
type EfiClient struct {
	cfg *config.Config
}

// Connect installs the Efí-backed gateway. Credentials are validated
// lazily, per charge, so a dev environment without a certificate can
// still boot (order creation will fail until configured).
func Connect(cfg *config.Config) {
	Client = &EfiClient{cfg: cfg}
	mode := "sandbox"
	if cfg.Production {
		mode = "production"
	}
	log.Printf("payment: Efí client initialized in %s mode", mode)
}

func (e *EfiClient) baseURL() string {
	if e.cfg.Production {
		return productionBaseURL
	}
	return sandboxBaseURL
}

// newHTTPClient builds a resty client carrying the mTLS certificate
// Efí requires on every call.
func (e *EfiClient) newHTTPClient() (*resty.Client, error) {
	if e.cfg.EfiCertPath == "" {
		return nil, errors.New("EFI_CERTIFICATE_PATH is not set")
	}
	cert, err := tls.LoadX509KeyPair(e.cfg.EfiCertPath, e.cfg.EfiCertKeyPath)
	if err != nil {
		return nil, fmt.Errorf("loading client certificate: %w", err)
	}

	client := resty.New().
		SetBaseURL(e.baseURL()).
		SetTimeout(15 * time.Second).
		SetTLSClientConfig(&tls.Config{Certificates: []tls.Certificate{cert}})
	return client, nil
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   int    `json:"expires_in"`
}

type chargeResponse struct {
	Txid string `json:"txid"`
	Loc  struct {
		ID int `json:"id"`
	} `json:"loc"`
}

type qrCodeResponse struct {
	QRCode       string `json:"qrcode"`
	ImagemQRCode string `json:"imagemQrcode"`
}

// CreatePixCharge creates an immediate PIX charge for the given total
// and expiration window, then fetches its QR code.
func (e *EfiClient) CreatePixCharge(total float64, expirationSeconds int) (*Charge, error) {
	client, err := e.newHTTPClient()
	if err != nil {
		log.Printf("payment: client setup failed: %v", err)
		return nil, ErrGatewayUnavailable
	}

	// STEP 1: OAuth token (client credentials + certificate)
	var token tokenResponse
	resp, err := client.R().
		SetBasicAuth(e.cfg.EfiClientID, e.cfg.EfiClientSecret).
		SetBody(map[string]string{"grant_type": "client_credentials"}).
		SetResult(&token).
		Post("/oauth/token")
	if err != nil || resp.IsError() || token.AccessToken == "" {
		log.Printf("payment: Efí token request failed: err=%v status=%s body=%s", err, resp.Status(), resp.String())
		return nil, ErrGatewayUnavailable
	}

	// STEP 2: Create the immediate charge
	// Efí expects the amount as a string with two decimal places.
	body := map[string]interface{}{
		"calendario": map[string]interface{}{
			"expiracao": expirationSeconds,
		},
		"valor": map[string]string{
			"original": fmt.Sprintf("%.2f", total),
		},
		"chave":              e.cfg.EfiPixKey,
		"solicitacaoPagador": fmt.Sprintf("Pedido Gamer Store R$%.2f", total),
	}

	var charge chargeResponse
	resp, err = client.R().
		SetAuthToken(token.AccessToken).
		SetBody(body).
		SetResult(&charge).
		Post("/v2/cob")
	if err != nil || resp.IsError() || charge.Txid == "" {
		log.Printf("payment: Efí charge creation failed: err=%v status=%s body=%s", err, resp.Status(), resp.String())
		return nil, ErrGatewayUnavailable
	}

	// STEP 3: Fetch the QR code for the charge location
	var qr qrCodeResponse
	resp, err = client.R().
		SetAuthToken(token.AccessToken).
		SetResult(&qr).
		Get(fmt.Sprintf("/v2/loc/%d/qrcode", charge.Loc.ID))
	if err != nil || resp.IsError() {
		log.Printf("payment: Efí QR code fetch failed: err=%v status=%s body=%s", err, resp.Status(), resp.String())
		return nil, ErrGatewayUnavailable
	}

	log.Printf("payment: PIX charge created (txid=%s)", charge.Txid)
	return &Charge{
		Txid:          charge.Txid,
		CopyPasteCode: qr.QRCode,
		QRCodeImage:   qr.ImagemQRCode,
	}, nil
}
