package handler

import (
	"net/http"
	"strconv"

	"github.com/ethereum/go-ethereum/common"
	"github.com/labstack/echo/v4"

	"github.com/DELIGHT-LABS/monad-ticket/internal/api"
)

// parseEventID はパスパラメーターからイベントIDを読み取る
func parseEventID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "イベントIDの形式が不正です")
	}
	return id, nil
}

// parseTokenID はパスパラメーターからトークンIDを読み取る
func parseTokenID(c echo.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "トークンIDの形式が不正です")
	}
	return id, nil
}

// parseAddress は16進アドレス文字列を検証して変換する
func parseAddress(s string) (common.Address, error) {
	if !common.IsHexAddress(s) {
		return common.Address{}, echo.NewHTTPError(http.StatusBadRequest, "アドレスの形式が不正です")
	}
	return common.HexToAddress(s), nil
}

// respondDomainError は台帳エラーをJSONレスポンスへ変換する
func respondDomainError(c echo.Context, err error) error {
	status, body := api.DomainErrorResponse(err)
	return c.JSON(status, body)
}
