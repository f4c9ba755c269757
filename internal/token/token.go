package token

import (
	"context"
	"encoding/json"

	"github.com/arijiittt/kalp-airdrop/internal/config"
	"github.com/arijiittt/kalp-airdrop/internal/gateway"
	"github.com/arijiittt/kalp-airdrop/internal/logger"
	"github.com/arijiittt/kalp-airdrop/internal/models"
)

// Contract function names as deployed behind the gateway
const (
	claimFunction       = "Claim"
	balanceOfFunction   = "BalanceOf"
	totalSupplyFunction = "TotalSupply"
)

// Service exposes the airdrop contract's operations over the gateway
type Service struct {
	config *config.Config
	client *gateway.Client
}

// NewService creates a new token service
func NewService(cfg *config.Config, client *gateway.Client) *Service {
	return &Service{
		config: cfg,
		client: client,
	}
}

// Claim requests the configured airdrop amount for the given address.
// The gateway result and any error pass through unchanged.
func (s *Service) Claim(ctx context.Context, address string) (*models.Response, error) {
	logger.Info("Claiming %d tokens for %s", s.config.ClaimAmount, address)

	args := map[string]any{
		"amount":  s.config.ClaimAmount,
		"address": address,
	}

	resp, err := s.client.Invoke(ctx, s.config.InvokeEndpoint(claimFunction), args)
	if err != nil {
		logger.Error("Claim failed for %s: %v", address, err)
		return nil, err
	}

	return resp, nil
}

// BalanceOf reads the token balance of the given account
func (s *Service) BalanceOf(ctx context.Context, account string) (*models.Response, error) {
	args := map[string]any{
		"account": account,
	}

	resp, err := s.client.Invoke(ctx, s.config.QueryEndpoint(balanceOfFunction), args)
	if err != nil {
		logger.Error("Balance query failed for %s: %v", account, err)
		return nil, err
	}

	return resp, nil
}

// TotalSupply reads the token's total supply
func (s *Service) TotalSupply(ctx context.Context) (*models.Response, error) {
	resp, err := s.client.Invoke(ctx, s.config.QueryEndpoint(totalSupplyFunction), map[string]any{})
	if err != nil {
		logger.Error("Total supply query failed: %v", err)
		return nil, err
	}

	return resp, nil
}

// BalanceAmount reads and decodes the balance of the given account
func (s *Service) BalanceAmount(ctx context.Context, account string) (json.Number, error) {
	args := map[string]any{
		"account": account,
	}

	result, err := gateway.InvokeInto[models.BalanceResult](ctx, s.client, s.config.QueryEndpoint(balanceOfFunction), args)
	if err != nil {
		return "", err
	}

	return result.Balance, nil
}

// TotalSupplyAmount reads and decodes the token's total supply
func (s *Service) TotalSupplyAmount(ctx context.Context) (json.Number, error) {
	result, err := gateway.InvokeInto[models.TotalSupplyResult](ctx, s.client, s.config.QueryEndpoint(totalSupplyFunction), map[string]any{})
	if err != nil {
		return "", err
	}

	return result.TotalSupply, nil
}
