package chain

import (
	"context"
	"crypto/ecdsa"
	"fmt"
	"math/big"
	"strings"
	"sync"

	"github.com/blues/lps/internal/config"
	"github.com/blues/lps/internal/launchpad"
	"github.com/blues/lps/internal/logger"
	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
)

// ERC20 transfer ABI定义（简化版）
const erc20ABI = `[
	{
		"constant": false,
		"inputs": [
			{"name": "to", "type": "address"},
			{"name": "value", "type": "uint256"}
		],
		"name": "transfer",
		"outputs": [{"name": "", "type": "bool"}],
		"type": "function"
	}
]`

// PayoutClient 链上划转客户端，实现引擎的资产划转原语。
// 托管账户持有两种 ERC20 资产，按资产标识映射到对应合约地址。
// 发送交易串行，避免托管账户 nonce 竞争。
type PayoutClient struct {
	mu         sync.Mutex
	client     *ethclient.Client
	privateKey *ecdsa.PrivateKey
	from       common.Address
	chainId    *big.Int
	gasLimit   uint64
	assets     map[string]common.Address
	tokenABI   abi.ABI
}

// NewPayoutClient 创建划转客户端
func NewPayoutClient(cfg config.ChainConfig) (*PayoutClient, error) {
	client, err := ethclient.Dial(cfg.RpcUrl)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to chain client: %w", err)
	}

	privateKey, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("failed to parse private key: %w", err)
	}

	tokenABI, err := abi.JSON(strings.NewReader(erc20ABI))
	if err != nil {
		return nil, fmt.Errorf("failed to parse token ABI: %w", err)
	}

	from := crypto.PubkeyToAddress(privateKey.PublicKey)
	logger.Info("Initialized payout client (chain: %d, custody: %s)", cfg.ChainId, from.Hex())

	return &PayoutClient{
		client:     client,
		privateKey: privateKey,
		from:       from,
		chainId:    big.NewInt(cfg.ChainId),
		gasLimit:   cfg.GasLimit,
		assets: map[string]common.Address{
			launchpad.AssetBase:  common.HexToAddress(cfg.BaseAsset),
			launchpad.AssetToken: common.HexToAddress(cfg.TokenAsset),
		},
		tokenABI: tokenABI,
	}, nil
}

// Transfer 把指定资产从托管账户划给目标地址
func (c *PayoutClient) Transfer(asset string, to string, amount *big.Int) error {
	contractAddr, ok := c.assets[asset]
	if !ok {
		return fmt.Errorf("unknown asset: %s", asset)
	}

	data, err := c.tokenABI.Pack("transfer", common.HexToAddress(to), amount)
	if err != nil {
		return fmt.Errorf("failed to pack transfer call: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	ctx := context.Background()
	nonce, err := c.client.PendingNonceAt(ctx, c.from)
	if err != nil {
		return fmt.Errorf("failed to get nonce: %w", err)
	}

	gasPrice, err := c.client.SuggestGasPrice(ctx)
	if err != nil {
		return fmt.Errorf("failed to get gas price: %w", err)
	}

	tx := types.NewTransaction(nonce, contractAddr, big.NewInt(0), c.gasLimit, gasPrice, data)
	signedTx, err := types.SignTx(tx, types.NewEIP155Signer(c.chainId), c.privateKey)
	if err != nil {
		return fmt.Errorf("failed to sign transaction: %w", err)
	}

	if err := c.client.SendTransaction(ctx, signedTx); err != nil {
		return fmt.Errorf("failed to send transaction: %w", err)
	}

	logger.Info("Sent payout tx %s (asset: %s, to: %s, amount: %s)",
		signedTx.Hash().Hex(), asset, to, amount.String())
	return nil
}

// Close 关闭链客户端连接
func (c *PayoutClient) Close() {
	c.client.Close()
}
