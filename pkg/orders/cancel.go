package orders

import (
	"encoding/json"
	"fmt"
	"math/big"

	"dexd/pkg/http"

	"github.com/ethereum/go-ethereum/common/hexutil"
)

// IsCancelling reports whether a cancel is already in flight for the key
// (order id, or position id for trigger cancels); used to disable repeat
// submission.
func (e *Engine) IsCancelling(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.cancelling[key]
}

// beginCancel flags the key; returns false if a cancel is already running.
func (e *Engine) beginCancel(key string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.cancelling[key] {
		return false
	}
	e.cancelling[key] = true
	return true
}

func (e *Engine) endCancel(key string) {
	e.mu.Lock()
	delete(e.cancelling, key)
	e.mu.Unlock()
}

// CancelOrder cancels one pending order through the request/broadcast API:
// the API returns the calldata to submit, which is then signed and relayed.
func (e *Engine) CancelOrder(orderId string) error {
	if !e.beginCancel(orderId) {
		return fmt.Errorf("cancel already in flight for order %v", orderId)
	}
	defer e.endCancel(orderId)

	// (1) request calldata
	reqBody, err := json.Marshal(map[string]string{
		"address": e.address.Hex(),
		"orderId": orderId,
	})
	if err != nil {
		return err
	}
	status, resBody, err := http.PostRequest(fmt.Sprintf("%s/cancel/request", e.orderApiUrl), "", reqBody)
	if err != nil {
		return err
	}
	if status != "200 OK" {
		return fmt.Errorf("status: %v: %v", status, string(resBody))
	}
	var res struct {
		To       string `json:"to"`
		Calldata string `json:"calldata"`
	}
	if err := json.Unmarshal(resBody, &res); err != nil {
		return err
	}
	if res.Calldata == "" {
		return fmt.Errorf("cancel request for order %v returned no calldata", orderId)
	}

	// (2) sign and broadcast
	return e.submitAction(cancelAction{
		Type:     "cancelOrder",
		Target:   res.To,
		Calldata: res.Calldata,
	})
}

// CancelTrigger cancels one trigger order. Unlike pending-order cancels the
// calldata is constructed locally and submitted directly.
func (e *Engine) CancelTrigger(positionId, triggerId string) error {
	key := positionId + ":" + triggerId
	if !e.beginCancel(key) {
		return fmt.Errorf("cancel already in flight for trigger %v", key)
	}
	defer e.endCancel(key)

	pid, ok := new(big.Int).SetString(positionId, 10)
	if !ok {
		return fmt.Errorf("invalid position id: %v", positionId)
	}
	tid, ok := new(big.Int).SetString(triggerId, 10)
	if !ok {
		return fmt.Errorf("invalid trigger id: %v", triggerId)
	}
	calldata, err := e.lens.PackCancelTriggerOrder(pid, tid)
	if err != nil {
		return err
	}

	return e.submitAction(cancelAction{
		Type:     "cancelTrigger",
		Target:   e.client.TriggerVaultAddress.Hex(),
		Calldata: hexutil.Encode(calldata),
	})
}

// CancelAllTriggers cancels every trigger attached to a position.
func (e *Engine) CancelAllTriggers(positionId string) error {
	if !e.beginCancel(positionId) {
		return fmt.Errorf("cancel already in flight for position %v", positionId)
	}
	defer e.endCancel(positionId)

	pid, ok := new(big.Int).SetString(positionId, 10)
	if !ok {
		return fmt.Errorf("invalid position id: %v", positionId)
	}
	calldata, err := e.lens.PackCancelAllTriggerOrders(pid)
	if err != nil {
		return err
	}

	return e.submitAction(cancelAction{
		Type:     "cancelAllTriggers",
		Target:   e.client.TriggerVaultAddress.Hex(),
		Calldata: hexutil.Encode(calldata),
	})
}

func (e *Engine) submitAction(action cancelAction) error {
	nonce := getNonce()
	signature, err := e.signer.signAction(action, nonce)
	if err != nil {
		return fmt.Errorf("fail to sign %v action: %v", action.Type, err)
	}
	reqBody, err := json.Marshal(actionRequest{
		Action:    action,
		Nonce:     nonce,
		Signature: signature,
	})
	if err != nil {
		return err
	}

	status, resBody, err := http.PostRequest(fmt.Sprintf("%s/submit", e.relayUrl), "", reqBody)
	if err != nil {
		return err
	}
	if status != "200 OK" {
		return fmt.Errorf("status: %v: %v", status, string(resBody))
	}

	var res struct {
		Status string `json:"status"`
		Error  string `json:"error"`
	}
	if err := json.Unmarshal(resBody, &res); err != nil {
		return err
	}
	if res.Status != "ok" {
		return fmt.Errorf("fail to submit %v: %v", action.Type, res.Error)
	}
	return nil
}
