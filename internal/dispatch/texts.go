package dispatch

import (
	"fmt"

	"telegram-todo-bot/internal/models"
)

const (
	replyPong     = "pong"
	replyWelcome  = "謝謝你加我為好友！輸入 help 查看指令。"
	replyTextOnly = "我目前只處理文字訊息，請傳文字給我。"
	replyCanceled = "操作已取消。"

	replyHelp = "指令：\n" +
		"- 新增 (逐步新增)\n" +
		"- 編輯 <編號>\n" +
		"- 刪除 <編號1>,<編號2>...\n" +
		"- 完成 <編號1>,<編號2>...\n" +
		"- list (列出項目)\n" +
		"- 快捷指令: 主分類 + 子分類 + 名稱 [+ 地點]\n" +
		"- 多筆新增: 主分類 + 子分類 [+ 地點] ++ 項目1, 項目2, ..."

	promptAddStart    = "好的，我們來新增一個待辦事項。請輸入主分類（或輸入'取消'）："
	promptSubCategory = "請輸入子分類："
	promptTitle       = "請輸入待辦事項名稱："
	promptPlace       = "請輸入地點（若無請輸入'無'）："
	promptNewTitle    = "請輸入新的「名稱」："
	promptNewPlace    = "請輸入新的「地點」（若要清空請輸入'無'）："
	replyBadChoice    = "無效的選項，請重新輸入 (1 或 2)，或輸入'取消'。"

	errSingleUsage = "快捷指令格式錯誤，範例：主分類 + 子分類 + 名稱 [+ 地點]"
	errBatchUsage  = "快捷指令格式錯誤，範例：主分類 + 子分類 [+ 地點] ++ 項目1, 項目2, ..."
	errEditUsage   = "編輯指令格式錯誤，請使用 '編輯 <編號>'"
	errDeleteUsage = "刪除指令格式錯誤，請使用 '刪除 <編號1>,<編號2>...'"
	errDoneUsage   = "完成指令格式錯誤，請使用 '完成 <編號1>,<編號2>...'"
	errUnknown     = "發生未知錯誤，請取消後重試。"

	replyEmptyBatch = "沒有可新增的項目。"
	replyEmptyList  = "目前沒有任何清單。"
)

func replyAdded(title, category, subCategory string, place *string) string {
	s := fmt.Sprintf("已新增：%s (%s/%s)", title, category, subCategory)
	if place != nil {
		s += "，地點：" + *place
	}
	return s
}

func replyBatchAdded(category, subCategory string, place *string, n int) string {
	s := fmt.Sprintf("已在 %s/%s", category, subCategory)
	if place != nil {
		s += " (地點: " + *place + ")"
	}
	return s + fmt.Sprintf(" 新增 %d 個項目。", n)
}

func replyEditIntro(it *models.Item) string {
	place := "未設定"
	if it.Place != nil {
		place = *it.Place
	}
	return fmt.Sprintf(
		"您正要編輯項目 [%d]：%s\n分類：%s/%s\n地點：%s\n\n您想編輯哪個欄位？\n1. 名稱\n2. 地點\n\n請輸入選項（或輸入'取消'）",
		it.ID, it.Title, it.Category, it.SubCategory, place)
}

func replyItemNotFound(id int64) string {
	return fmt.Sprintf("找不到待辦事項 [%d]。", id)
}

func replyEdited(id int64) string {
	return fmt.Sprintf("待辦事項 [%d] 已更新。", id)
}

func replyEditFailed(id int64) string {
	return fmt.Sprintf("更新失敗，找不到項目 [%d] 或欄位不正確。", id)
}

func replyDeleted(n int) string {
	return fmt.Sprintf("已刪除 %d 個項目。", n)
}

func replyMarkedDone(n int) string {
	return fmt.Sprintf("已將 %d 個項目標示為完成。", n)
}

func replyFallback(text string) string {
	return "收到：" + text
}
