// Package token sends ERC-20 reward transfers for settled airdrops.
package token

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"

	"github.com/playchain/arcade-backend/pkg/config"
)

// ErrSenderDisabled is returned when no RPC endpoint is configured.
var ErrSenderDisabled = errors.New("token sender is not configured")

// transferSelector is the 4-byte selector of transfer(address,uint256).
var transferSelector = crypto.Keccak256([]byte("transfer(address,uint256)"))[:4]

// Sender submits one reward transfer and returns the transaction hash.
type Sender interface {
	Send(ctx context.Context, to string, amount decimal.Decimal) (string, error)
}

// ERC20Sender sends token transfers from a single funded hot wallet.
type ERC20Sender struct {
	client   *ethclient.Client
	key      *ecdsa.PrivateKey
	from     common.Address
	token    common.Address
	chainID  *big.Int
	decimals int32
	gasLimit uint64
}

// NewERC20Sender dials the configured RPC endpoint and prepares the
// sending wallet. Returns a disabled sender when no RPC URL is set so
// queueing still works in environments without chain access.
func NewERC20Sender(cfg *config.AirdropConfig) (Sender, error) {
	if cfg.RPCURL == "" {
		return disabledSender{}, nil
	}

	client, err := ethclient.Dial(cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("failed to dial rpc endpoint: %w", err)
	}

	key, err := crypto.HexToECDSA(cfg.SenderKey)
	if err != nil {
		return nil, fmt.Errorf("failed to parse sender key: %w", err)
	}

	return &ERC20Sender{
		client:   client,
		key:      key,
		from:     crypto.PubkeyToAddress(key.PublicKey),
		token:    common.HexToAddress(cfg.TokenAddress),
		chainID:  big.NewInt(cfg.ChainID),
		decimals: cfg.TokenDecimals,
		gasLimit: cfg.GasLimit,
	}, nil
}

func (s *ERC20Sender) Send(ctx context.Context, to string, amount decimal.Decimal) (string, error) {
	units := amount.Shift(s.decimals).BigInt()
	if units.Sign() <= 0 {
		return "", fmt.Errorf("transfer amount %s is not positive", amount)
	}

	data := packTransfer(common.HexToAddress(to), units)

	nonce, err := s.client.PendingNonceAt(ctx, s.from)
	if err != nil {
		return "", fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := s.client.SuggestGasPrice(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, s.token, big.NewInt(0), s.gasLimit, gasPrice, data)
	signedTx, err := types.SignTx(tx, types.LatestSignerForChainID(s.chainID), s.key)
	if err != nil {
		return "", fmt.Errorf("failed to sign transfer: %w", err)
	}

	if err := s.client.SendTransaction(ctx, signedTx); err != nil {
		return "", fmt.Errorf("failed to send transfer: %w", err)
	}

	return signedTx.Hash().Hex(), nil
}

// packTransfer ABI-encodes a transfer(address,uint256) call.
func packTransfer(to common.Address, amount *big.Int) []byte {
	data := make([]byte, 0, 4+64)
	data = append(data, transferSelector...)
	data = append(data, common.LeftPadBytes(to.Bytes(), 32)...)
	data = append(data, common.LeftPadBytes(amount.Bytes(), 32)...)
	return data
}

type disabledSender struct{}

func (disabledSender) Send(context.Context, string, decimal.Decimal) (string, error) {
	return "", ErrSenderDisabled
}
