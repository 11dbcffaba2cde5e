package database

import (
	"inkwell/internal/core/comment"
	"inkwell/internal/core/fanoutqueue"
	"inkwell/internal/core/follower"
	"inkwell/internal/core/like"
	"inkwell/internal/core/post"
	"inkwell/internal/core/user"

	"gorm.io/gorm"
)

// Cascades run inside the caller's transaction and delete children before parents so they
// hold with or without foreign keys.

// deleteComments removes the given comments, their replies, and likes on all of them.
func deleteComments(tx *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	var replyIDs []string
	if err := tx.Model(&comment.Comment{}).Where("parent_id IN ?", ids).Pluck("id", &replyIDs).Error; err != nil {
		return err
	}
	all := append(append([]string{}, ids...), replyIDs...)

	if err := tx.Where("target_kind = ? AND target_id IN ?", like.TargetComment, all).Delete(&like.Like{}).Error; err != nil {
		return err
	}
	// replies first, the parent_id foreign key points at the roots
	if err := tx.Where("id IN ? AND parent_id IS NOT NULL", all).Delete(&comment.Comment{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", all).Delete(&comment.Comment{}).Error
}

// deletePosts removes the given posts with their comments, likes and queued fanouts.
func deletePosts(tx *gorm.DB, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	var commentIDs []string
	if err := tx.Model(&comment.Comment{}).Where("post_id IN ?", ids).Pluck("id", &commentIDs).Error; err != nil {
		return err
	}
	if err := deleteComments(tx, commentIDs); err != nil {
		return err
	}
	if err := tx.Where("target_kind = ? AND target_id IN ?", like.TargetPost, ids).Delete(&like.Like{}).Error; err != nil {
		return err
	}
	if err := tx.Where("post_id IN ?", ids).Delete(&fanoutqueue.FanoutQueue{}).Error; err != nil {
		return err
	}
	return tx.Where("id IN ?", ids).Delete(&post.Post{}).Error
}

// deleteUser removes a user and everything hanging off it.
func deleteUser(tx *gorm.DB, id string) error {
	var postIDs []string
	if err := tx.Model(&post.Post{}).Where("user_id = ?", id).Pluck("id", &postIDs).Error; err != nil {
		return err
	}
	var commentIDs []string
	if err := tx.Model(&comment.Comment{}).Where("user_id = ?", id).Pluck("id", &commentIDs).Error; err != nil {
		return err
	}

	if err := deletePosts(tx, postIDs); err != nil {
		return err
	}
	if err := deleteComments(tx, commentIDs); err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", id).Delete(&like.Like{}).Error; err != nil {
		return err
	}
	if err := tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&follower.Follower{}).Error; err != nil {
		return err
	}
	if err := tx.Where("user_id = ?", id).Delete(&user.SocialLink{}).Error; err != nil {
		return err
	}
	if err := tx.Where("author_id = ?", id).Delete(&fanoutqueue.FanoutQueue{}).Error; err != nil {
		return err
	}
	return tx.Where("id = ?", id).Delete(&user.User{}).Error
}
