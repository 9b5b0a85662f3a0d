// Package ga is the Google Analytics source collaborator: credential setup,
// management API traversal from account/property/view names to a view ID,
// and the reporting API adapter that produces report pages.
package ga

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	analytics "google.golang.org/api/analytics/v3"
	analyticsreporting "google.golang.org/api/analyticsreporting/v4"
	"google.golang.org/api/option"
)

// Client wraps the management (v3) and reporting (v4) services for one
// analytics account. Queries run against the view selected by ResolveView
// or SetViewID.
type Client struct {
	reporting  *analyticsreporting.Service
	management *analytics.Service
	viewID     string
	log        zerolog.Logger
}

// NewClient builds a Client from a service-account credentials file.
func NewClient(ctx context.Context, credentialsFile string, log zerolog.Logger) (*Client, error) {
	opts := []option.ClientOption{
		option.WithCredentialsFile(credentialsFile),
		option.WithScopes(analyticsreporting.AnalyticsReadonlyScope),
	}
	reporting, err := analyticsreporting.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ga: creating reporting service: %w", err)
	}
	management, err := analytics.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("ga: creating management service: %w", err)
	}
	return &Client{reporting: reporting, management: management, log: log}, nil
}

// SetViewID selects the view queries run against.
func (c *Client) SetViewID(id string) {
	c.viewID = id
}

// ViewID returns the currently selected view ID.
func (c *Client) ViewID() string {
	return c.viewID
}

// ResolveView walks the management API from an account name through a web
// property name to a view (profile) name and selects the matching view ID.
// One set of credentials may have access to several accounts, each with
// several properties and views; names are how operators configure them.
func (c *Client) ResolveView(ctx context.Context, accountName, propertyName, viewName string) error {
	account, err := c.accountByName(ctx, accountName)
	if err != nil {
		return err
	}
	property, err := c.propertyByName(ctx, account.Id, propertyName)
	if err != nil {
		return err
	}
	profiles, err := c.Views(ctx, account.Id, property.Id)
	if err != nil {
		return err
	}
	for _, p := range profiles {
		if p.Name == viewName {
			c.viewID = p.Id
			c.log.Info().Str("account", accountName).Str("property", propertyName).
				Str("view", viewName).Str("view_id", p.Id).Msg("resolved analytics view")
			return nil
		}
	}
	return fmt.Errorf("ga: view %q does not exist on property %q", viewName, propertyName)
}

// Accounts lists every analytics account the credentials can read.
func (c *Client) Accounts(ctx context.Context) ([]*analytics.Account, error) {
	accounts, err := c.management.Management.Accounts.List().Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("ga: listing accounts: %w", err)
	}
	return accounts.Items, nil
}

// Properties lists the web properties of an account.
func (c *Client) Properties(ctx context.Context, accountID string) ([]*analytics.Webproperty, error) {
	properties, err := c.management.Management.Webproperties.List(accountID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("ga: listing properties for account %s: %w", accountID, err)
	}
	return properties.Items, nil
}

// Views lists the views (profiles) of a web property.
func (c *Client) Views(ctx context.Context, accountID, propertyID string) ([]*analytics.Profile, error) {
	profiles, err := c.management.Management.Profiles.List(accountID, propertyID).Context(ctx).Do()
	if err != nil {
		return nil, fmt.Errorf("ga: listing views for property %s: %w", propertyID, err)
	}
	return profiles.Items, nil
}

func (c *Client) accountByName(ctx context.Context, name string) (*analytics.Account, error) {
	accounts, err := c.Accounts(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range accounts {
		if a.Name == name {
			return a, nil
		}
	}
	return nil, fmt.Errorf("ga: account %q does not exist", name)
}

func (c *Client) propertyByName(ctx context.Context, accountID, name string) (*analytics.Webproperty, error) {
	properties, err := c.Properties(ctx, accountID)
	if err != nil {
		return nil, err
	}
	for _, p := range properties {
		if p.Name == name {
			return p, nil
		}
	}
	return nil, fmt.Errorf("ga: property %q does not exist on account %s", name, accountID)
}
