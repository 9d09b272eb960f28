package dialogs

import (
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/dialog"

	"stockscan/internal/capture"
	"stockscan/internal/model"
	"stockscan/internal/store"
)

// ErrorMessage maps an error to the Korean text shown to the user. Unknown
// errors fall back to the raw error string.
func ErrorMessage(err error) string {
	switch {
	case errors.Is(err, model.ErrMissingFields):
		return "필수 항목을 모두 입력해주세요"
	case errors.Is(err, model.ErrQuantity):
		return "수량은 1 이상의 숫자여야 합니다"
	case errors.Is(err, model.ErrDateFormat):
		return "유통기한은 YYYYMMDD 8자리로 입력해주세요"
	case errors.Is(err, model.ErrUnitName):
		return "단위 이름은 1자 이상 20자 이하로 입력해주세요"
	case errors.Is(err, store.ErrDuplicateUnit):
		return "이미 존재하는 포장 단위입니다"
	case errors.Is(err, store.ErrProtectedUnit):
		return "기본 포장 단위는 삭제할 수 없습니다"
	case errors.Is(err, capture.ErrDeviceNotFound):
		return "카메라를 찾을 수 없습니다"
	case errors.Is(err, capture.ErrPermissionDenied):
		return "카메라 사용 권한이 없습니다"
	case errors.Is(err, capture.ErrDeviceBusy):
		return "카메라를 사용할 수 없습니다. 다른 앱이 사용 중인지 확인해주세요"
	case errors.Is(err, capture.ErrNoFrame):
		return "카메라에서 영상을 가져오지 못했습니다"
	case errors.Is(err, capture.ErrNotSupported):
		return "이 기기에서는 카메라 촬영을 지원하지 않습니다"
	}
	return err.Error()
}

// ShowError shows err's user-facing message over the given window.
func ShowError(err error, win fyne.Window) {
	dialog.ShowInformation("알림", ErrorMessage(err), win)
}
