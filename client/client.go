// Package client talks to the reservation API over HTTP and keeps the
// login session on disk.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"reservation-api/auth"
	"reservation-api/models"

	"github.com/golang-jwt/jwt/v5"
)

// APIError is a non-2xx answer from the server.
type APIError struct {
	Status  int
	Message string
	Field   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d %s: %s", e.Status, http.StatusText(e.Status), e.Message)
}

// ConnectionError means the server could not be reached at all.
type ConnectionError struct {
	Err error
}

func (e ConnectionError) Error() string { return "cannot connect to the server: " + e.Err.Error() }

func (e ConnectionError) Unwrap() error { return e.Err }

// IsStatus reports whether err is an APIError with the given status.
func IsStatus(err error, status int) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == status
}

type Client struct {
	baseURL string
	http    *http.Client
	session *SessionCache
}

type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

func New(baseURL string, session *SessionCache, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 15 * time.Second},
		session: session,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type RestaurantInput struct {
	Name        string `json:"name"`
	Location    string `json:"location"`
	Description string `json:"description"`
}

type ReservationInput struct {
	UserID       uint   `json:"user_id,omitempty"`
	RestaurantID uint   `json:"restaurant_id,omitempty"`
	Date         string `json:"date"`
	Time         string `json:"time"`
	PeopleCount  int    `json:"people_count"`
}

type created struct {
	Message string `json:"message"`
	ID      uint   `json:"id"`
}

func (c *Client) Signup(ctx context.Context, name, email, password string, role models.UserRole) (uint, error) {
	var out struct {
		UserID uint `json:"user_id"`
	}
	body := map[string]string{"name": name, "email": email, "password": password}
	if role != "" {
		body["role"] = string(role)
	}
	if err := c.do(ctx, http.MethodPost, "/signup", false, body, &out); err != nil {
		return 0, err
	}
	return out.UserID, nil
}

// Login authenticates and stores userId, role and token in the session
// cache. The claims are read without verifying the signature; the server
// verifies on every request.
func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	var out struct {
		Token string `json:"token"`
	}
	if err := c.do(ctx, http.MethodPost, "/login", false, map[string]string{"email": email, "password": password}, &out); err != nil {
		return Session{}, err
	}
	var claims auth.Claims
	if _, _, err := jwt.NewParser().ParseUnverified(out.Token, &claims); err != nil {
		return Session{}, fmt.Errorf("decode token: %w", err)
	}
	s := Session{UserID: claims.UserID, Role: claims.Role, Token: out.Token}
	if err := c.session.Save(s); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Logout revokes the token server side when possible and always clears
// the local session.
func (c *Client) Logout(ctx context.Context) error {
	_, ok, err := c.session.Load()
	if err != nil {
		return err
	}
	var remote error
	if ok {
		remote = c.do(ctx, http.MethodPost, "/logout", true, nil, nil)
		if IsStatus(remote, http.StatusUnauthorized) {
			remote = nil
		}
	}
	if err := c.session.Clear(); err != nil {
		return err
	}
	return remote
}

func (c *Client) Restaurants(ctx context.Context) ([]models.Restaurant, error) {
	var out []models.Restaurant
	err := c.do(ctx, http.MethodGet, "/restaurants", false, nil, &out)
	return out, err
}

func (c *Client) CreateRestaurant(ctx context.Context, in RestaurantInput) (uint, error) {
	var out created
	err := c.do(ctx, http.MethodPost, "/restaurants", true, in, &out)
	return out.ID, err
}

func (c *Client) UpdateRestaurant(ctx context.Context, id uint, in RestaurantInput) error {
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/restaurants/%d", id), true, in, nil)
}

func (c *Client) DeleteRestaurant(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/restaurants/%d", id), true, nil, nil)
}

// Reserve books a table for the logged-in user.
func (c *Client) Reserve(ctx context.Context, in ReservationInput) (uint, error) {
	s, ok, err := c.session.Load()
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrNotLoggedIn
	}
	in.UserID = s.UserID
	var out created
	err = c.do(ctx, http.MethodPost, "/reservations", true, in, &out)
	return out.ID, err
}

func (c *Client) MyReservations(ctx context.Context) ([]models.ReservationView, error) {
	var out []models.ReservationView
	err := c.do(ctx, http.MethodGet, "/profile/reservations", true, nil, &out)
	return out, err
}

func (c *Client) AllReservations(ctx context.Context) ([]models.ReservationView, error) {
	var out []models.ReservationView
	err := c.do(ctx, http.MethodGet, "/reservations", true, nil, &out)
	return out, err
}

func (c *Client) UpdateReservation(ctx context.Context, id uint, in ReservationInput) error {
	in.UserID, in.RestaurantID = 0, 0
	return c.do(ctx, http.MethodPut, fmt.Sprintf("/reservations/%d", id), true, in, nil)
}

func (c *Client) DeleteReservation(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/reservations/%d", id), true, nil, nil)
}

func (c *Client) CancelMyReservation(ctx context.Context, id uint) error {
	return c.do(ctx, http.MethodDelete, fmt.Sprintf("/profile/reservations/%d", id), true, nil, nil)
}

var ErrNotLoggedIn = errors.New("not logged in")

func (c *Client) do(ctx context.Context, method, path string, withToken bool, in, out any) error {
	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if withToken {
		s, ok, err := c.session.Load()
		if err != nil {
			return err
		}
		if !ok {
			return ErrNotLoggedIn
		}
		req.Header.Set("Authorization", "Bearer "+s.Token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return ConnectionError{Err: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return ConnectionError{Err: err}
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var msg struct {
			Error string `json:"error"`
			Field string `json:"field"`
		}
		if json.Unmarshal(raw, &msg) == nil && msg.Error != "" {
			apiErr.Message, apiErr.Field = msg.Error, msg.Field
		} else {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("decode %s %s response: %w", method, path, err)
	}
	return nil
}
